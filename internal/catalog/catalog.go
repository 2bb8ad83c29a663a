// Package catalog keeps authored songs in a SQLite database so they can be
// played by name. Scores are never stored.
package catalog

import (
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/binary"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"

	"git.lost.host/meutraa/scroller/internal/game"
)

var ErrNotFound = errors.New("song not found")

type Catalog struct {
	db *sql.DB
}

type Entry struct {
	Name  string
	Sum   string // Hash of the note data
	Notes int
	Audio string
}

const schema = `
create table if not exists songs
  (
	  id integer not null primary key,
	  sum text not null,
	  name text not null unique,
	  audio text,
	  bpm real,
	  lanes integer not null
  );
create table if not exists notes
  (
	  song_id integer not null references songs(id) on delete cascade,
	  position integer not null,
	  time_ns integer not null,
	  kind integer not null,
	  key1 text not null,
	  key2 text,
	  lane integer not null,
	  primary key (song_id, position)
  );
`

// Open opens or creates the catalog at path, ":memory:" for a throwaway one.
func Open(path string) (*Catalog, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if nil != err {
		return nil, err
	}
	// An in-memory database lives and dies with its connection
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); nil != err {
		db.Close()
		return nil, errors.Wrap(err, "unable to create catalog schema")
	}
	return &Catalog{db: db}, nil
}

func (c *Catalog) Close() error {
	return c.db.Close()
}

// Sum hashes the notes of a song.
func Sum(song *game.Song) string {
	h := sha256.New()
	var buf [8]byte
	for _, n := range song.Notes {
		binary.LittleEndian.PutUint64(buf[:], uint64(n.Time))
		h.Write(buf[:])
		h.Write([]byte{byte(n.Kind), byte(n.Lane)})
		h.Write([]byte(n.Key1))
		h.Write([]byte{0})
		h.Write([]byte(n.Key2))
		h.Write([]byte{0})
	}
	return base64.StdEncoding.EncodeToString(h.Sum(nil))
}

// Save stores a validated song, replacing any song of the same name.
func (c *Catalog) Save(song *game.Song) error {
	if err := song.Validate(); nil != err {
		return err
	}
	tx, err := c.db.Begin()
	if nil != err {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("delete from songs where name = ?", song.Name); nil != err {
		return errors.Wrap(err, "unable to replace song")
	}
	res, err := tx.Exec(
		"insert into songs(sum, name, audio, bpm, lanes) values(?, ?, ?, ?, ?)",
		Sum(song), song.Name, song.Audio, song.BPM, song.Lanes,
	)
	if nil != err {
		return errors.Wrap(err, "unable to save song")
	}
	id, err := res.LastInsertId()
	if nil != err {
		return err
	}
	stmt, err := tx.Prepare("insert into notes(song_id, position, time_ns, kind, key1, key2, lane) values(?, ?, ?, ?, ?, ?, ?)")
	if nil != err {
		return err
	}
	defer stmt.Close()
	for i, n := range song.Notes {
		if _, err := stmt.Exec(id, i, int64(n.Time), int(n.Kind), string(n.Key1), string(n.Key2), n.Lane); nil != err {
			return errors.Wrapf(err, "unable to save note %d", i)
		}
	}
	return tx.Commit()
}

// Load reads a song by name.
func (c *Catalog) Load(name string) (*game.Song, error) {
	var id int64
	song := &game.Song{Name: name}
	var audio sql.NullString
	err := c.db.QueryRow("select id, audio, bpm, lanes from songs where name = ?", name).
		Scan(&id, &audio, &song.BPM, &song.Lanes)
	if err == sql.ErrNoRows {
		return nil, errors.Wrapf(ErrNotFound, "%q", name)
	} else if nil != err {
		return nil, err
	}
	song.Audio = audio.String

	rows, err := c.db.Query("select time_ns, kind, key1, key2, lane from notes where song_id = ? order by position", id)
	if nil != err {
		return nil, errors.Wrap(err, "unable to load notes")
	}
	defer rows.Close()
	for rows.Next() {
		var (
			ns         int64
			kind, lane int
			key1       string
			key2       sql.NullString
		)
		if err := rows.Scan(&ns, &kind, &key1, &key2, &lane); nil != err {
			return nil, err
		}
		song.Notes = append(song.Notes, game.NoteSpec{
			Time: time.Duration(ns),
			Kind: game.Kind(kind),
			Key1: game.Key(key1),
			Key2: game.Key(key2.String),
			Lane: lane,
		})
	}
	if err := rows.Err(); nil != err {
		return nil, err
	}
	song.Normalize()
	return song, nil
}

// List returns every song ordered by name.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(`
	select s.name, s.sum, coalesce(s.audio, ''), count(n.position)
	  from songs s left join notes n on n.song_id = s.id
	 group by s.id
	 order by s.name`)
	if nil != err {
		return nil, err
	}
	defer rows.Close()
	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Name, &e.Sum, &e.Audio, &e.Notes); nil != err {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Delete removes a song and its notes.
func (c *Catalog) Delete(name string) error {
	res, err := c.db.Exec("delete from songs where name = ?", name)
	if nil != err {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Wrapf(ErrNotFound, "%q", name)
	}
	return nil
}
