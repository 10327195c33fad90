// Package store persists collection runs to sqlite or libsql.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"flightscout/internal/chrono"
	"flightscout/internal/flights"
	"flightscout/internal/normalize"
	"flightscout/internal/store/db"

	"github.com/shopspring/decimal"
)

var ErrNoRuns = errors.New("no collection runs stored")

type Store struct {
	db     *sql.DB
	qry    *db.Queries
	makeTx db.MakeTx
}

func NewStore(database *sql.DB) Store {
	return Store{
		db:     database,
		qry:    db.New(database),
		makeTx: db.NewMakeTx(database),
	}
}

// Init creates the tables if they do not exist yet.
func (s Store) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, db.Schema)
	return err
}

type Run struct {
	ID        int64
	StartedAt time.Time
	QueryURL  string
}

type PushRequest struct {
	Time     time.Time
	QueryURL string
	Records  flights.ResultSet
}

// Push stores a run and its records in one transaction, returning the id
// of the new run.
func (s Store) Push(ctx context.Context, req PushRequest) (int64, error) {
	txqry, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return 0, err
	}
	defer discard()

	runID, err := txqry.CreateRun(ctx, db.CreateRunParams{
		StartedAt: req.Time.Unix(),
		QueryUrl:  req.QueryURL,
	})
	if err != nil {
		return 0, fmt.Errorf("create run: %w", err)
	}

	for i, record := range req.Records {
		err = txqry.CreateFlightRecord(ctx, db.CreateFlightRecordParams{
			RunID:            runID,
			Position:         int64(i),
			Airline:          record.Airline,
			QueryDate:        record.QueryDate.Format(chrono.ISODate),
			DepartureTime:    record.Departure.String(),
			ArrivalTime:      record.Arrival.String(),
			ArrivalDayOffset: int64(record.ArrivalDayOffset),
			DurationMinutes:  int64(record.DurationMinutes),
			StopCount:        int64(record.StopCount),
			StopDescription:  record.StopDescription,
			Price:            record.Price.String(),
		})
		if err != nil {
			return 0, fmt.Errorf("create record %d: %w", i, err)
		}
	}

	err = commit()
	if err != nil {
		return 0, err
	}
	return runID, nil
}

func (s Store) LatestRun(ctx context.Context) (Run, error) {
	row, err := s.qry.GetLatestRun(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, ErrNoRuns
	}
	if err != nil {
		return Run{}, err
	}
	return Run{
		ID:        row.ID,
		StartedAt: time.Unix(row.StartedAt, 0),
		QueryURL:  row.QueryUrl,
	}, nil
}

// Pull reads back the records of a run in the order they were pushed.
func (s Store) Pull(ctx context.Context, runID int64) (flights.ResultSet, error) {
	rows, err := s.qry.GetFlightRecords(ctx, runID)
	if err != nil {
		return nil, err
	}

	records := make(flights.ResultSet, 0, len(rows))
	for _, row := range rows {
		record, err := fromRow(row)
		if err != nil {
			return nil, fmt.Errorf("run %d record %d: %w", runID, row.Position, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func fromRow(row db.FlightRecord) (flights.FlightRecord, error) {
	queryDate, err := time.Parse(chrono.ISODate, row.QueryDate)
	if err != nil {
		return flights.FlightRecord{}, err
	}
	departure, err := normalize.ParseClock(row.DepartureTime)
	if err != nil {
		return flights.FlightRecord{}, err
	}
	arrival, err := normalize.ParseClock(row.ArrivalTime)
	if err != nil {
		return flights.FlightRecord{}, err
	}
	price, err := decimal.NewFromString(row.Price)
	if err != nil {
		return flights.FlightRecord{}, err
	}
	return flights.FlightRecord{
		Airline:          row.Airline,
		Departure:        departure,
		Arrival:          arrival,
		ArrivalDayOffset: int(row.ArrivalDayOffset),
		DurationMinutes:  int(row.DurationMinutes),
		StopCount:        int(row.StopCount),
		StopDescription:  row.StopDescription,
		Price:            price,
		QueryDate:        queryDate,
	}, nil
}
