package dateutil

import (
	"database/sql/driver"
	"fmt"
	"os"
	"time"
)

const layout = "2006-01-02"

// Date adalah tanggal kalender tanpa komponen waktu.
// Semua jalur kode (check-in, check-out, approval cuti, filter dashboard)
// wajib memakai tipe ini agar tidak ada dua tempat yang berbeda pendapat
// soal "hari ini".
type Date struct {
	t time.Time // selalu midnight UTC
}

// AppLocation membaca kebijakan timezone proses dari APP_TIMEZONE.
// Default UTC bila tidak di-set atau tidak valid.
func AppLocation() *time.Location {
	name := os.Getenv("APP_TIMEZONE")
	if name == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Today menghitung tanggal kalender "hari ini" pada location yang diberikan.
func Today(loc *time.Location) Date {
	return FromTime(time.Now().In(loc))
}

// FromTime membuang komponen waktu dan menormalkan ke midnight UTC.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{t: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

// Parse menerima format YYYY-MM-DD.
func Parse(v string) (Date, error) {
	t, err := time.Parse(layout, v)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", v)
	}
	return Date{t: t}, nil
}

func (d Date) String() string { return d.t.Format(layout) }

// Time mengembalikan representasi midnight UTC untuk disimpan sebagai kolom date.
func (d Date) Time() time.Time { return d.t }

func (d Date) IsZero() bool { return d.t.IsZero() }

func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

func (d Date) Before(other Date) bool { return d.t.Before(other.t) }

func (d Date) After(other Date) bool { return d.t.After(other.t) }

func (d Date) Equal(other Date) bool { return d.t.Equal(other.t) }

// DaysUntil menghitung jumlah hari inklusif dari d sampai end.
func (d Date) DaysUntil(end Date) int {
	return int(end.t.Sub(d.t).Hours()/24) + 1
}

// Value implementasi driver.Valuer agar GORM menyimpan sebagai date.
func (d Date) Value() (driver.Value, error) {
	return d.t, nil
}

// Scan implementasi sql.Scanner.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*d = FromTime(v)
		return nil
	case string:
		parsed, err := Parse(v)
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	case []byte:
		parsed, err := Parse(string(v))
		if err != nil {
			return err
		}
		*d = parsed
		return nil
	default:
		return fmt.Errorf("cannot scan %T into dateutil.Date", src)
	}
}

// MarshalJSON menyerialisasi sebagai "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date json %s", s)
	}
	parsed, err := Parse(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
