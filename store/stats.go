// Package store keeps a local hand-history database so a bot's results
// survive restarts. Write failures are reported, never fatal: losing a
// record must not kill the session.
package store

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"

	"github.com/lais-vegas/vegas/core/log"
)

type HandRecord struct {
	ID       string         `gorm:"primaryKey;column:id;type:varchar(36)" json:"id"`
	TableID  string         `gorm:"column:table_id;type:varchar(64);index" json:"table_id"`
	HandID   string         `gorm:"column:hand_id;type:varchar(64)" json:"hand_id"`
	Pot      int            `gorm:"column:pot" json:"pot"`
	Won      bool           `gorm:"column:won" json:"won"`
	Amount   int            `gorm:"column:amount" json:"amount"`
	Showdown string         `gorm:"column:showdown;type:varchar(64)" json:"showdown"`
	Result   datatypes.JSON `gorm:"column:result" json:"result"`
	CreateAt time.Time      `gorm:"column:create_at;autoCreateTime" json:"create_at"`
}

func (m *HandRecord) TableName() string {
	return "hand_record"
}

type Stats struct {
	db *gorm.DB
}

func Open(dsn string) (*Stats, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		DisableNestedTransaction: true,
		NamingStrategy: schema.NamingStrategy{
			SingularTable: true,
		},
		Logger: log.NewGormLogger(),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&HandRecord{}); err != nil {
		return nil, err
	}
	return &Stats{db: db}, nil
}

// RecordHand stores one finished hand. A missing id gets a fresh uuid.
func (s *Stats) RecordHand(rec *HandRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	return s.db.Create(rec).Error
}

type Summary struct {
	HandsPlayed int
	HandsWon    int
	NetWon      int
}

// Summarize aggregates results for one table, or all tables when
// tableID is empty.
func (s *Stats) Summarize(tableID string) (*Summary, error) {
	q := s.db.Model(&HandRecord{})
	if tableID != "" {
		q = q.Where("table_id = ?", tableID)
	}

	var recs []HandRecord
	if err := q.Find(&recs).Error; err != nil {
		return nil, err
	}

	out := &Summary{}
	for _, r := range recs {
		out.HandsPlayed++
		if r.Won {
			out.HandsWon++
			out.NetWon += r.Amount
		}
	}
	return out, nil
}

func (s *Stats) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
