// Package store connects to the local data store and manages session tokens
// and assessment records
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"time"

	bolt "go.etcd.io/bbolt"

	"github.com/neuroverse/neuroverse-cli/internal/models"
)

const (
	sessionBucket    = "session"
	assessmentBucket = "assessments"
)

const (
	accessTokenKey  = "access_token"
	refreshTokenKey = "refresh_token"
)

var errAppRunning = errors.New(
	"is NeuroVerse already running? Only one instance can be active at a time",
)

// Client is a BoltDB database client.
type Client struct {
	*bolt.DB
	path string
}

func (c *Client) SaveTokens(pair models.TokenPair) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		err := b.Put([]byte(accessTokenKey), []byte(pair.AccessToken))
		if err != nil {
			return err
		}

		return b.Put([]byte(refreshTokenKey), []byte(pair.RefreshToken))
	})
}

func (c *Client) Tokens() (models.TokenPair, error) {
	var pair models.TokenPair

	err := c.View(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		pair.AccessToken = string(b.Get([]byte(accessTokenKey)))
		pair.RefreshToken = string(b.Get([]byte(refreshTokenKey)))

		return nil
	})

	return pair, err
}

func (c *Client) ClearTokens() error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(sessionBucket))

		err := b.Delete([]byte(accessTokenKey))
		if err != nil {
			return err
		}

		return b.Delete([]byte(refreshTokenKey))
	})
}

// assessmentKey orders records chronologically while keeping keys unique.
func assessmentKey(rec *models.AssessmentRecord) []byte {
	return []byte(rec.CreatedAt.Format(time.RFC3339Nano) + "_" + rec.ID)
}

func (c *Client) SaveAssessment(rec *models.AssessmentRecord) error {
	value, err := json.Marshal(rec)
	if err != nil {
		return err
	}

	return c.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(assessmentBucket)).Put(assessmentKey(rec), value)
	})
}

func (c *Client) GetAssessment(id string) (*models.AssessmentRecord, error) {
	recs, err := c.ListAssessments()
	if err != nil {
		return nil, err
	}

	for _, rec := range recs {
		if rec.ID == id {
			return rec, nil
		}
	}

	return nil, fmt.Errorf("no assessment record with id: %s", id)
}

func (c *Client) ListAssessments() ([]*models.AssessmentRecord, error) {
	var recs []*models.AssessmentRecord

	err := c.View(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(assessmentBucket)).
			ForEach(func(_, v []byte) error {
				var rec models.AssessmentRecord

				err := json.Unmarshal(v, &rec)
				if err != nil {
					return err
				}

				recs = append(recs, &rec)

				return nil
			})
	})

	return recs, err
}

func (c *Client) DeleteAssessments(ids []string) error {
	return c.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket([]byte(assessmentBucket))
		cur := b.Cursor()

		for k, v := cur.First(); k != nil; k, v = cur.Next() {
			var rec models.AssessmentRecord

			err := json.Unmarshal(v, &rec)
			if err != nil {
				return err
			}

			for _, id := range ids {
				if rec.ID == id {
					err = cur.Delete()
					if err != nil {
						return err
					}

					break
				}
			}
		}

		return nil
	})
}

func (c *Client) Open() error {
	db, err := openDB(c.path)
	if err != nil {
		return err
	}

	c.DB = db

	return nil
}

// openDB creates or opens a database and locks it.
func openDB(pathToDB string) (*bolt.DB, error) {
	var fileMode fs.FileMode = 0o600

	db, err := bolt.Open(
		pathToDB,
		fileMode,
		&bolt.Options{Timeout: 1 * time.Second},
	)
	if err != nil {
		if errors.Is(err, bolt.ErrDatabaseOpen) ||
			errors.Is(err, bolt.ErrTimeout) {
			return nil, errAppRunning
		}

		return nil, err
	}

	return db, nil
}

// NewClient returns a wrapper to a BoltDB connection.
func NewClient(dbPath string) (*Client, error) {
	db, err := openDB(dbPath)
	if err != nil {
		return nil, err
	}
	// Create the necessary buckets for storing data if they do not exist already
	err = db.Update(func(tx *bolt.Tx) error {
		_, err = tx.CreateBucketIfNotExists([]byte(sessionBucket))
		if err != nil {
			return err
		}

		_, err = tx.CreateBucketIfNotExists([]byte(assessmentBucket))

		return err
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		DB:   db,
		path: dbPath,
	}, nil
}
