package pixelframe

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/bodgit/pixelframe/frame"
	_ "github.com/mattn/go-sqlite3"
)

// ErrFrameNotFound is returned when the named frame is not in the
// database.
var ErrFrameNotFound = errors.New("pixelframe: frame not found")

// FrameDB is an sqlite-backed store of named frames. Frames are stored
// in their binary marshalled form.
type FrameDB struct {
	db *sql.DB
}

// NewFrameDB opens or creates the frame database at file.
func NewFrameDB(file string) (*FrameDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	return &FrameDB{
		db: db,
	}, nil
}

// Close closes the underlying database.
func (db *FrameDB) Close() error {
	return db.db.Close()
}

// Save stores f under the given name, replacing any previous frame with
// that name.
func (db *FrameDB) Save(name string, f *frame.Frame) error {
	b, err := f.MarshalBinary()
	if err != nil {
		return err
	}
	if _, err := db.db.Exec("INSERT OR REPLACE INTO frame (name, data) VALUES (?, ?)", name, b); err != nil {
		return err
	}
	return nil
}

// Load returns the named frame.
func (db *FrameDB) Load(name string) (*frame.Frame, error) {
	var data []byte
	switch err := db.db.QueryRow("SELECT data FROM frame WHERE name = ?", name).Scan(&data); err {
	case sql.ErrNoRows:
		return nil, ErrFrameNotFound
	case nil:
		f := new(frame.Frame)
		if err := f.UnmarshalBinary(data); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return nil, err
	}
}

// List returns the names of all stored frames in lexical order.
func (db *FrameDB) List() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM frame ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Delete removes the named frame.
func (db *FrameDB) Delete(name string) error {
	result, err := db.db.Exec("DELETE FROM frame WHERE name = ?", name)
	if err != nil {
		return err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFrameNotFound
	}
	return nil
}
