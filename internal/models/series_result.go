package models

// SeriesResult summarizes one car class within one subsession: how many
// entries took part and the strength of field reported by the archive.
type SeriesResult struct {
	SeasonID        int   `db:"seasonid" json:"seasonid" gorm:"column:seasonid"`
	WeekNum         int   `db:"week_num" json:"week_num" gorm:"column:week_num"`
	StartTime       int64 `db:"start_time" json:"start_time" gorm:"column:start_time"`
	CarClassID      int   `db:"carclassid" json:"carclassid" gorm:"column:carclassid;primaryKey;autoIncrement:false"`
	TrackID         int   `db:"trackid" json:"trackid" gorm:"column:trackid"`
	SessionID       int64 `db:"sessionid" json:"sessionid" gorm:"column:sessionid"`
	SubsessionID    int64 `db:"subsessionid" json:"subsessionid" gorm:"column:subsessionid;primaryKey;autoIncrement:false"`
	OfficialSession int   `db:"officialsession" json:"officialsession" gorm:"column:officialsession"`
	SizeOfField     int   `db:"sizeoffield" json:"sizeoffield" gorm:"column:sizeoffield"`
	StrengthOfField int   `db:"strengthoffield" json:"strengthoffield" gorm:"column:strengthoffield"`
}

// TableName maps SeriesResult onto the series_result table.
func (SeriesResult) TableName() string {
	return "series_result"
}

// Key returns the composite key of the summary row.
func (s *SeriesResult) Key() SeriesResultKey {
	return SeriesResultKey{SubsessionID: s.SubsessionID, CarClassID: s.CarClassID}
}
