package models

import "fmt"

// EventKey identifies one archive row.
type EventKey struct {
	SubsessionID int64
	CustID       int64
	CarClassID   int
}

func (k EventKey) String() string {
	return fmt.Sprintf("%d:%d:%d", k.SubsessionID, k.CustID, k.CarClassID)
}

// EventResultKey identifies one participant result.
type EventResultKey struct {
	SubsessionID int64
	CustID       int64
}

func (k EventResultKey) String() string {
	return fmt.Sprintf("%d:%d", k.SubsessionID, k.CustID)
}

// SeriesResultKey identifies one car class within one subsession.
type SeriesResultKey struct {
	SubsessionID int64
	CarClassID   int
}

func (k SeriesResultKey) String() string {
	return fmt.Sprintf("%d:%d", k.SubsessionID, k.CarClassID)
}
