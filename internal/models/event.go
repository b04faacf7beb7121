package models

// Event is one row of a season's results archive: a single participant
// (custid) in a single car class of a race subsession. Rows are written once
// and never updated.
type Event struct {
	SubsessionID       int64  `db:"subsessionid" json:"subsessionid" mapstructure:"subsessionid" gorm:"column:subsessionid;primaryKey;autoIncrement:false"`
	SessionID          int64  `db:"sessionid" json:"sessionid" mapstructure:"sessionid" gorm:"column:sessionid"`
	EventType          int    `db:"evttype" json:"evttype" mapstructure:"evttype" gorm:"column:evttype"`
	SeasonID           int    `db:"seasonid" json:"seasonid" mapstructure:"seasonid" gorm:"column:seasonid;index"`
	SeriesID           int    `db:"seriesid" json:"seriesid" mapstructure:"seriesid" gorm:"column:seriesid"`
	SeasonYear         int    `db:"season_year" json:"season_year" mapstructure:"season_year" gorm:"column:season_year;index:idx_events_season"`
	SeasonQuarter      int    `db:"season_quarter" json:"season_quarter" mapstructure:"season_quarter" gorm:"column:season_quarter;index:idx_events_season"`
	OfficialSession    int    `db:"officialsession" json:"officialsession" mapstructure:"officialsession" gorm:"column:officialsession"`
	RaceWeekNum        int    `db:"race_week_num" json:"race_week_num" mapstructure:"race_week_num" gorm:"column:race_week_num"`
	StartDate          string `db:"start_date" json:"start_date" mapstructure:"start_date" gorm:"column:start_date"`
	StartTime          string `db:"start_time" json:"start_time" mapstructure:"start_time" gorm:"column:start_time"`
	RawStartTime       int64  `db:"raw_start_time" json:"raw_start_time" mapstructure:"raw_start_time" gorm:"column:raw_start_time"`
	FinishedAt         int64  `db:"finishedat" json:"finishedat" mapstructure:"finishedat" gorm:"column:finishedat"`
	StrengthOfField    int    `db:"strengthoffield" json:"strengthoffield" mapstructure:"strengthoffield" gorm:"column:strengthoffield"`
	CustID             int64  `db:"custid" json:"custid" mapstructure:"custid" gorm:"column:custid;primaryKey;autoIncrement:false"`
	DisplayName        string `db:"displayname" json:"displayname" mapstructure:"displayname" gorm:"column:displayname"`
	CarClassID         int    `db:"carclassid" json:"carclassid" mapstructure:"carclassid" gorm:"column:carclassid;primaryKey;autoIncrement:false"`
	CarID              int    `db:"carid" json:"carid" mapstructure:"carid" gorm:"column:carid"`
	TrackID            int    `db:"trackid" json:"trackid" mapstructure:"trackid" gorm:"column:trackid"`
	CatID              int    `db:"catid" json:"catid" mapstructure:"catid" gorm:"column:catid"`
	StartingPosition   int    `db:"starting_position" json:"starting_position" mapstructure:"starting_position" gorm:"column:starting_position"`
	FinishingPosition  int    `db:"finishing_position" json:"finishing_position" mapstructure:"finishing_position" gorm:"column:finishing_position"`
	Incidents          int    `db:"incidents" json:"incidents" mapstructure:"incidents" gorm:"column:incidents"`
	BestQualLapTime    string `db:"bestquallaptime" json:"bestquallaptime" mapstructure:"bestquallaptime" gorm:"column:bestquallaptime"`
	BestLapTime        string `db:"bestlaptime" json:"bestlaptime" mapstructure:"bestlaptime" gorm:"column:bestlaptime"`
	ChampPoints        int    `db:"champpoints" json:"champpoints" mapstructure:"champpoints" gorm:"column:champpoints"`
	ClubPointsSort     int    `db:"clubpointssort" json:"clubpointssort" mapstructure:"clubpointssort" gorm:"column:clubpointssort"`
	HelmLicenseLevel   int    `db:"helm_licenselevel" json:"helm_licenselevel" mapstructure:"helm_licenselevel" gorm:"column:helm_licenselevel"`
	HelmPattern        int    `db:"helm_pattern" json:"helm_pattern" mapstructure:"helm_pattern" gorm:"column:helm_pattern"`
	HelmColor1         string `db:"helm_color1" json:"helm_color1" mapstructure:"helm_color1" gorm:"column:helm_color1"`
	HelmColor2         string `db:"helm_color2" json:"helm_color2" mapstructure:"helm_color2" gorm:"column:helm_color2"`
	HelmColor3         string `db:"helm_color3" json:"helm_color3" mapstructure:"helm_color3" gorm:"column:helm_color3"`
	RowNumber          int    `db:"rn" json:"rn" mapstructure:"rn" gorm:"column:rn"`
	SessionRank        int    `db:"sesrank" json:"sesrank" mapstructure:"sesrank" gorm:"column:sesrank"`
	LicenseGroup       int    `db:"licensegroup" json:"licensegroup" mapstructure:"licensegroup" gorm:"column:licensegroup"`
	ClubPoints         int    `db:"clubpoints" json:"clubpoints" mapstructure:"clubpoints" gorm:"column:clubpoints"`
	DropRacePoints     int    `db:"dropracepoints" json:"dropracepoints" mapstructure:"dropracepoints" gorm:"column:dropracepoints"`
	GroupName          string `db:"groupname" json:"groupname" mapstructure:"groupname" gorm:"column:groupname"`
	WinnerDisplayName  string `db:"winnerdisplayname" json:"winnerdisplayname" mapstructure:"winnerdisplayname" gorm:"column:winnerdisplayname"`
	WinnerLicenseLevel int    `db:"winnerlicenselevel" json:"winnerlicenselevel" mapstructure:"winnerlicenselevel" gorm:"column:winnerlicenselevel"`
	WinnerHelmPattern  int    `db:"winnerhelmpattern" json:"winnerhelmpattern" mapstructure:"winnerhelmpattern" gorm:"column:winnerhelmpattern"`
	WinnerHelmColor1   string `db:"winnerhelmcolor1" json:"winnerhelmcolor1" mapstructure:"winnerhelmcolor1" gorm:"column:winnerhelmcolor1"`
	WinnerHelmColor2   string `db:"winnerhelmcolor2" json:"winnerhelmcolor2" mapstructure:"winnerhelmcolor2" gorm:"column:winnerhelmcolor2"`
	WinnerHelmColor3   string `db:"winnerhelmcolor3" json:"winnerhelmcolor3" mapstructure:"winnerhelmcolor3" gorm:"column:winnerhelmcolor3"`
	WinnersGroupID     int    `db:"winnersgroupid" json:"winnersgroupid" mapstructure:"winnersgroupid" gorm:"column:winnersgroupid"`
	SubsessionBestLap  string `db:"subsession_bestlaptime" json:"subsession_bestlaptime" mapstructure:"subsession_bestlaptime" gorm:"column:subsession_bestlaptime"`
	ChampPointsSort    int    `db:"champpointssort" json:"champpointssort" mapstructure:"champpointssort" gorm:"column:champpointssort"`
}

// TableName maps Event onto the events table.
func (Event) TableName() string {
	return "events"
}

// Key returns the natural key of the archive row.
func (e *Event) Key() EventKey {
	return EventKey{SubsessionID: e.SubsessionID, CustID: e.CustID, CarClassID: e.CarClassID}
}

// SessionSummary is the per-subsession slice of an archive row used to
// describe a race independent of any one participant.
type SessionSummary struct {
	SubsessionID    int64 `db:"subsessionid"`
	SessionID       int64 `db:"sessionid"`
	SeasonID        int   `db:"seasonid"`
	SeriesID        int   `db:"seriesid"`
	CatID           int   `db:"catid"`
	SeasonYear      int   `db:"season_year"`
	SeasonQuarter   int   `db:"season_quarter"`
	RaceWeekNum     int   `db:"race_week_num"`
	RawStartTime    int64 `db:"raw_start_time"`
	TrackID         int   `db:"trackid"`
	OfficialSession int   `db:"officialsession"`
	StrengthOfField int   `db:"strengthoffield"`
}
