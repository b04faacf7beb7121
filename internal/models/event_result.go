package models

// EventResult is one participant's outcome in a race subsession, taken from
// the subsession results sheet. Lap times are normalized to seconds; nil
// means no time was recorded.
type EventResult struct {
	SubsessionID       int64    `db:"subsessionid" json:"subsessionid" mapstructure:"subsessionid" gorm:"column:subsessionid;primaryKey;autoIncrement:false"`
	FinPos             int      `db:"finpos" json:"finpos" mapstructure:"finpos" gorm:"column:finpos"`
	CarID              int      `db:"carid" json:"carid" mapstructure:"carid" gorm:"column:carid"`
	Car                string   `db:"car" json:"car" mapstructure:"car" gorm:"column:car"`
	CarClassID         int      `db:"carclassid" json:"carclassid" mapstructure:"carclassid" gorm:"column:carclassid"`
	CarClass           string   `db:"carclass" json:"carclass" mapstructure:"carclass" gorm:"column:carclass"`
	TeamID             int64    `db:"teamid" json:"teamid" mapstructure:"teamid" gorm:"column:teamid"`
	CustID             int64    `db:"custid" json:"custid" mapstructure:"custid" gorm:"column:custid;primaryKey;autoIncrement:false"`
	Name               string   `db:"name" json:"name" mapstructure:"name" gorm:"column:name"`
	StartPos           int      `db:"startpos" json:"startpos" mapstructure:"startpos" gorm:"column:startpos"`
	OutID              int      `db:"outid" json:"outid" mapstructure:"outid" gorm:"column:outid"`
	Out                string   `db:"out" json:"out" mapstructure:"out" gorm:"column:out"`
	Interval           *string  `db:"interval" json:"interval" mapstructure:"interval" gorm:"column:interval"`
	LapsLed            int      `db:"lapsled" json:"lapsled" mapstructure:"lapsled" gorm:"column:lapsled"`
	QualifyTime        *float64 `db:"qualifytime" json:"qualifytime" mapstructure:"-" gorm:"column:qualifytime"`
	AverageLapTime     *float64 `db:"averagelaptime" json:"averagelaptime" mapstructure:"-" gorm:"column:averagelaptime"`
	FastestLapTime     *float64 `db:"fastestlaptime" json:"fastestlaptime" mapstructure:"-" gorm:"column:fastestlaptime"`
	FastLap            *int     `db:"fastlap" json:"fastlap" mapstructure:"fastlap" gorm:"column:fastlap"`
	LapsComp           int      `db:"lapscomp" json:"lapscomp" mapstructure:"lapscomp" gorm:"column:lapscomp"`
	Inc                int      `db:"inc" json:"inc" mapstructure:"inc" gorm:"column:inc"`
	Pts                int      `db:"pts" json:"pts" mapstructure:"pts" gorm:"column:pts"`
	ClubPts            int      `db:"clubpts" json:"clubpts" mapstructure:"clubpts" gorm:"column:clubpts"`
	Div                string   `db:"div" json:"div" mapstructure:"div" gorm:"column:div"`
	ClubID             int      `db:"clubid" json:"clubid" mapstructure:"clubid" gorm:"column:clubid"`
	Club               string   `db:"club" json:"club" mapstructure:"club" gorm:"column:club"`
	OldIRating         *int     `db:"oldirating" json:"oldirating" mapstructure:"oldirating" gorm:"column:oldirating"`
	NewIRating         *int     `db:"newirating" json:"newirating" mapstructure:"newirating" gorm:"column:newirating"`
	OldLicenseLevel    *int     `db:"oldlicenselevel" json:"oldlicenselevel" mapstructure:"oldlicenselevel" gorm:"column:oldlicenselevel"`
	OldLicenseSubLevel *int     `db:"oldlicensesublevel" json:"oldlicensesublevel" mapstructure:"oldlicensesublevel" gorm:"column:oldlicensesublevel"`
	NewLicenseLevel    *int     `db:"newlicenselevel" json:"newlicenselevel" mapstructure:"newlicenselevel" gorm:"column:newlicenselevel"`
	NewLicenseSubLevel *int     `db:"newlicensesublevel" json:"newlicensesublevel" mapstructure:"newlicensesublevel" gorm:"column:newlicensesublevel"`
	SeriesName         string   `db:"seriesname" json:"seriesname" mapstructure:"seriesname" gorm:"column:seriesname"`
	MaxFuelFill        int      `db:"maxfuelfill" json:"maxfuelfill" mapstructure:"maxfuelfill" gorm:"column:maxfuelfill"`
	WeightPenaltyKG    int      `db:"weightpenaltykg" json:"weightpenaltykg" mapstructure:"weightpenaltykg" gorm:"column:weightpenaltykg"`
	AggPts             int      `db:"aggpts" json:"aggpts" mapstructure:"aggpts" gorm:"column:aggpts"`
}

// TableName maps EventResult onto the event_result table.
func (EventResult) TableName() string {
	return "event_result"
}

// Key returns the composite key of the result row.
func (r *EventResult) Key() EventResultKey {
	return EventResultKey{SubsessionID: r.SubsessionID, CustID: r.CustID}
}

// IsTeam reports whether the row describes a team entry rather than a driver.
// The results sheet marks team rows with a negative customer id.
func (r *EventResult) IsTeam() bool {
	return r.CustID < 0
}

// Team builds the team record described by a team row.
func (r *EventResult) Team() *Team {
	return &Team{ID: r.TeamID, Name: r.Name}
}
