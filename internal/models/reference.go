package models

// Car is a vehicle from the remote catalog.
type Car struct {
	CarID      int    `db:"carid" json:"id" gorm:"column:carid;primaryKey;autoIncrement:false"`
	AbbrevName string `db:"abbrevname" json:"abbrevname" gorm:"column:abbrevname"`
	Name       string `db:"name" json:"name" gorm:"column:name"`
	DirPath    string `db:"dirpath" json:"dirpath" gorm:"column:dirpath"`
}

// TableName maps Car onto the cars table.
func (Car) TableName() string {
	return "cars"
}

// CarClass groups cars that compete together for class standings.
type CarClass struct {
	CarClassID int    `db:"carclassid" json:"id" gorm:"column:carclassid;primaryKey;autoIncrement:false"`
	Name       string `db:"name" json:"name" gorm:"column:name"`
	ShortName  string `db:"shortname" json:"shortname" gorm:"column:shortname"`
}

// TableName maps CarClass onto the carclasses table.
func (CarClass) TableName() string {
	return "carclasses"
}

// Track is a track configuration from the remote catalog.
type Track struct {
	TrackID              int    `db:"trackid" json:"id" gorm:"column:trackid;primaryKey;autoIncrement:false"`
	Name                 string `db:"name" json:"name" gorm:"column:name"`
	Config               string `db:"config" json:"config" gorm:"column:config"`
	LowerNameAndConfig   string `db:"lowernameandconfig" json:"lowerNameAndConfig" gorm:"column:lowernameandconfig"`
	CatID                int    `db:"catid" json:"catid" gorm:"column:catid"`
	FreeWithSubscription string `db:"freewithsubscription" json:"freeWithSubscription" gorm:"column:freewithsubscription"`
}

// TableName maps Track onto the tracks table.
func (Track) TableName() string {
	return "tracks"
}

// Series is one season of a racing series.
type Series struct {
	SeasonID        int    `db:"seasonid" json:"seasonid" gorm:"column:seasonid;primaryKey;autoIncrement:false"`
	SeriesID        int    `db:"seriesid" json:"seriesid" gorm:"column:seriesid"`
	CatID           int    `db:"catid" json:"catid" gorm:"column:catid"`
	SeriesName      string `db:"seriesname" json:"seriesname" gorm:"column:seriesname"`
	SeriesShortName string `db:"seriesshortname" json:"seriesshortname" gorm:"column:seriesshortname"`
	Multiclass      string `db:"multiclass" json:"multiclass" gorm:"column:multiclass"`
	Year            int    `db:"year" json:"year" gorm:"column:year"`
	Quarter         int    `db:"quarter" json:"quarter" gorm:"column:quarter"`
	Image           string `db:"image" json:"image" gorm:"column:image"`
}

// TableName maps Series onto the series table.
func (Series) TableName() string {
	return "series"
}
