package models

// Team is a multi-driver entry. Newer names replace older ones.
type Team struct {
	ID   int64  `db:"id" json:"id" gorm:"column:id;primaryKey;autoIncrement:false"`
	Name string `db:"name" json:"name" gorm:"column:name"`
}

// TableName maps Team onto the teams table.
func (Team) TableName() string {
	return "teams"
}
