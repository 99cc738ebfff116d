// Package transcript is an optional, best-effort sink that copies chat
// messages into a local SQLite file. It exists purely as a background side
// effect: a full queue or a failed insert costs a log line, never an error
// on the event path, and the relay runs fine without it.
package transcript

import (
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/nervis/signaling/internal/domain"
)

type Entry struct {
	Room      domain.RoomID `json:"roomId"`
	UserID    domain.UserID `json:"userId"`
	UserName  string        `json:"userName"`
	Message   string        `json:"message"`
	Timestamp string        `json:"timestamp"`
}

type Store struct {
	db    *sql.DB
	queue chan Entry
	wg    sync.WaitGroup

	closeOnce sync.Once
}

// Open creates (or reuses) the database at path, runs migrations and starts
// the background writer.
func Open(path string) (*Store, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("transcript path is required")
	}

	dsn := "file:" + filepath.ToSlash(path) + "?cache=shared" +
		"&_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &Store{db: db, queue: make(chan Entry, 256)}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s.wg.Add(1)
	go s.writer()
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS chat_messages (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		room_id TEXT NOT NULL,
		user_id TEXT NOT NULL,
		user_name TEXT NOT NULL,
		message TEXT NOT NULL,
		sent_at TEXT NOT NULL
	);`)
	return err
}

// Append enqueues one message for the background writer. It never blocks:
// when the queue is full the entry is dropped and counted against nobody.
func (s *Store) Append(room domain.RoomID, from domain.Identity, text, timestamp string) {
	e := Entry{
		Room:      room,
		UserID:    from.UserID,
		UserName:  from.Username,
		Message:   text,
		Timestamp: timestamp,
	}
	select {
	case s.queue <- e:
	default:
		log.Warn().Str("module", "transcript").Str("room", string(room)).Msg("transcript queue full, dropping message")
	}
}

func (s *Store) writer() {
	defer s.wg.Done()
	for e := range s.queue {
		_, err := s.db.Exec(
			`INSERT INTO chat_messages (room_id, user_id, user_name, message, sent_at) VALUES (?, ?, ?, ?, ?)`,
			string(e.Room), string(e.UserID), e.UserName, e.Message, e.Timestamp,
		)
		if err != nil {
			log.Error().Err(err).Str("module", "transcript").Str("room", string(e.Room)).Msg("transcript insert failed")
		}
	}
}

// Recent returns up to limit messages for room, oldest first.
func (s *Store) Recent(room domain.RoomID, limit int) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT room_id, user_id, user_name, message, sent_at FROM chat_messages
		 WHERE room_id = ? ORDER BY seq LIMIT ?`,
		string(room), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		var roomID, userID string
		if err := rows.Scan(&roomID, &userID, &e.UserName, &e.Message, &e.Timestamp); err != nil {
			return nil, err
		}
		e.Room = domain.RoomID(roomID)
		e.UserID = domain.UserID(userID)
		out = append(out, e)
	}
	return out, rows.Err()
}

// Close drains the queue and shuts the database.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		close(s.queue)
	})
	s.wg.Wait()
	return s.db.Close()
}
