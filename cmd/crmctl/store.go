package main

import (
	"database/sql"

	"github.com/WillianPoeraridev/crm-retencao-fenix/internal/repository"
)

type store struct {
	db      *sql.DB
	users   *repository.UserRepo
	cities  *repository.CityRepo
	periods *repository.PeriodRepo
	cases   *repository.CaseRepo
}

func openStore(path string) (*store, error) {
	db, err := repository.InitDB(path)
	if err != nil {
		return nil, withCode(exitDB, err)
	}
	return &store{
		db:      db,
		users:   repository.NewUserRepo(db),
		cities:  repository.NewCityRepo(db),
		periods: repository.NewPeriodRepo(db),
		cases:   repository.NewCaseRepo(db),
	}, nil
}

func (s *store) Close() error {
	return s.db.Close()
}
