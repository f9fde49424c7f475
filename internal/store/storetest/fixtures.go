// Package storetest holds behaviour suites shared by every store
// implementation.
package storetest

import (
	"fmt"
	"strings"
	"time"

	randomdata "github.com/Pallinder/go-randomdata"

	"medical-agenda/internal/model"
)

// MissingID is never handed out by a store under test.
const MissingID int64 = 1 << 40

// RandomAppointment returns a pending appointment on a random future slot
// for random participants, so suites can share a database.
func RandomAppointment() *model.Appointment {
	return &model.Appointment{
		Date:      RandomDate(),
		Time:      RandomClock(),
		Status:    model.StatusPending,
		Notes:     randomdata.SillyName(),
		PatientID: int64(randomdata.Number(1, 1<<30)),
		DoctorID:  int64(randomdata.Number(1, 1<<30)),
	}
}

func RandomDate() time.Time {
	return time.Date(randomdata.Number(2030, 2090), time.Month(randomdata.Number(1, 13)),
		randomdata.Number(1, 29), 0, 0, 0, 0, time.UTC)
}

func RandomClock() time.Duration {
	return time.Duration(randomdata.Number(7, 20))*time.Hour +
		time.Duration(randomdata.Number(0, 4)*15)*time.Minute
}

func RandomEmail() string {
	return strings.ToLower(fmt.Sprintf("%s.%d@example.test", randomdata.SillyName(), randomdata.Number(1, 1<<30)))
}

func RandomUser(p model.Profile) *model.User {
	return &model.User{
		Name:         randomdata.FullName(randomdata.RandomGender),
		Email:        RandomEmail(),
		PasswordHash: "hash-" + randomdata.SillyName(),
		Profile:      p,
	}
}
