package main

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"log"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/lab2439/ruuid"
)

// ticksBetweenEpochs is the 100ns tick count between the UUID epoch
// (1582-10-15) and the Unix epoch
const ticksBetweenEpochs = 0x01B21DD213814000

// uuidTicks returns the current time as 100ns ticks since the UUID epoch,
// the unit stored in the state table
func uuidTicks() uint64 {
	return ticksBetweenEpochs + uint64(time.Now().UnixNano())/100
}

// StateDAO encapsulates the database operations for UUID generator state.
//
// RFC 4122 section 4.2.1 recommends keeping the node id, clock sequence and
// last used timestamp in stable storage so a version 1 generator that
// restarts (or whose clock is set back) never reuses a (timestamp, clock
// sequence) pair. The uuid_state table holds one row per node id:
//
//	CREATE TABLE uuid_state (
//	    node_id    CHAR(12) PRIMARY KEY,  -- hex, no separators
//	    clock_seq  SMALLINT UNSIGNED NOT NULL,
//	    last_ticks BIGINT UNSIGNED NOT NULL
//	);
type StateDAO struct {
	db *sql.DB
}

// NewStateDAO creates a new DAO with the provided database DSN.
func NewStateDAO(dsn string) (*StateDAO, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// DB performance and safety tuning
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	return &StateDAO{
		db: db,
	}, nil
}

// LoadClockSequence reads back the saved clock sequence for the node and
// atomically increments the stored value, all inside one transaction. The
// increment on every read-back is what makes a crash between save points
// harmless: the restarted generator can never resume with a sequence it may
// already have emitted UUIDs under.
func (dao *StateDAO) LoadClockSequence(nodeID string) (uint16, error) {
	tx, err := dao.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	// Step 1: Bump the stored clock sequence, creating the row on first use
	_, err = tx.ExecContext(context.Background(),
		`INSERT INTO uuid_state (node_id, clock_seq, last_ticks) VALUES (?, 0, 0)
		 ON DUPLICATE KEY UPDATE clock_seq = (clock_seq + 1) & 0x3FFF`, nodeID)
	if err != nil {
		return 0, err
	}

	// Step 2: Read back the new value together with the last saved timestamp
	var clockSeq uint16
	var lastTicks uint64
	err = tx.QueryRowContext(context.Background(),
		"SELECT clock_seq, last_ticks FROM uuid_state WHERE node_id = ?", nodeID).Scan(&clockSeq, &lastTicks)
	if err != nil {
		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	// A saved timestamp ahead of the local clock means the clock was set
	// back while we were down; the freshly bumped clock sequence already
	// covers that window, so a warning is all that is needed.
	if now := uuidTicks(); lastTicks > now {
		log.Printf("clock moved backwards while down: saved %d > now %d", lastTicks, now)
	}

	return clockSeq, nil
}

// SaveTimestamp records the last timestamp the generator has reached.
func (dao *StateDAO) SaveTimestamp(nodeID string, ticks uint64) error {
	_, err := dao.db.ExecContext(context.Background(),
		"UPDATE uuid_state SET last_ticks = ? WHERE node_id = ?", ticks, nodeID)
	return err
}

// checkpoint persists the generator's progress on a ticker until stop is closed.
func checkpoint(dao *StateDAO, nodeID string, stop <-chan struct{}) {
	ticker := time.NewTicker(3 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := dao.SaveTimestamp(nodeID, uuidTicks()); err != nil {
				// Transient DB errors only widen the restart window;
				// the clock sequence bump at load covers it
				log.Printf("checkpoint failed: %v", err)
			}
		case <-stop:
			dao.SaveTimestamp(nodeID, uuidTicks())
			return
		}
	}
}

func main() {
	// Please modify this DSN with your real DB credentials before use.
	dsn := "lzww:123456@tcp(127.0.0.1:3306)/test_db?parseTime=true"

	dao, err := NewStateDAO(dsn)
	if err != nil {
		log.Fatal(err)
	}

	gen := ruuid.NewGenerator()

	// The node id doubles as the state table key
	node, err := ruuid.RandomNodeID(rand.Reader)
	if err != nil {
		log.Fatal(err)
	}
	gen.SetNodeID(node)
	nodeID := hex.EncodeToString(node[:])

	clockSeq, err := dao.LoadClockSequence(nodeID)
	if err != nil {
		log.Fatal(err)
	}
	gen.SetClockSequence(clockSeq)

	log.Printf("v1 generator restored: node %s, clock sequence %d", nodeID, clockSeq)

	stop := make(chan struct{})
	go checkpoint(dao, nodeID, stop)

	var wg sync.WaitGroup
	start := time.Now()

	// Simulate 10 concurrent goroutines, each generating 500 UUIDs
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 500; j++ {
				if _, err := gen.NewV1(); err != nil {
					log.Printf("Error: %v", err)
				}
			}
		}()
	}

	wg.Wait()
	close(stop)
	log.Printf("Total time: %s, finished generating 5000 v1 UUIDs", time.Since(start))
}
