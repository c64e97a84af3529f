package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	appErrors "github.com/eloquasai/outreach-backend/internal/errors"
	"github.com/eloquasai/outreach-backend/internal/model"
)

// CampaignRepository is the Postgres-backed campaign store. Per-campaign
// mutation is serialized with SELECT ... FOR UPDATE row locks, matching the
// one-writer-per-campaign contract of the in-memory store.
type CampaignRepository struct {
	DB *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS campaigns (
    id              TEXT PRIMARY KEY,
    user_id         TEXT NOT NULL,
    prospect_id     TEXT NOT NULL,
    sequence_id     TEXT NOT NULL,
    status          TEXT NOT NULL,
    personalization JSONB NOT NULL,
    performance     JSONB NOT NULL,
    created_at      TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_campaigns_user ON campaigns (user_id, created_at DESC);

CREATE TABLE IF NOT EXISTS campaign_messages (
    id                TEXT PRIMARY KEY,
    campaign_id       TEXT NOT NULL REFERENCES campaigns(id),
    position          INT NOT NULL,
    template_type     TEXT NOT NULL,
    subject           TEXT NOT NULL,
    body              TEXT NOT NULL,
    trust_story_score INT NOT NULL,
    score_rationale   TEXT NOT NULL,
    suggested_timing  TEXT NOT NULL,
    word_count        INT NOT NULL,
    scheduled_at      TIMESTAMPTZ NOT NULL,
    sent_at           TIMESTAMPTZ,
    status            TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_campaign_messages_campaign ON campaign_messages (campaign_id, position);
`

// EnsureSchema creates the tables when they do not exist yet.
func (r *CampaignRepository) EnsureSchema() error {
	_, err := r.DB.Exec(schema)
	return err
}

func (r *CampaignRepository) Create(c *model.Campaign) error {
	personalization, err := json.Marshal(c.Personalization)
	if err != nil {
		return err
	}
	performance, err := json.Marshal(c.Performance)
	if err != nil {
		return err
	}

	tx, err := r.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `
        INSERT INTO campaigns (id, user_id, prospect_id, sequence_id, status, personalization, performance, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
    `
	if _, err := tx.Exec(query, c.ID, c.UserID, c.ProspectID, c.SequenceID, c.Status, personalization, performance, c.CreatedAt); err != nil {
		return err
	}

	for i, m := range c.Messages {
		if err := insertMessage(tx, c.ID, i, m); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func insertMessage(tx *sql.Tx, campaignID string, position int, m model.GeneratedMessage) error {
	query := `
        INSERT INTO campaign_messages
        (id, campaign_id, position, template_type, subject, body, trust_story_score, score_rationale, suggested_timing, word_count, scheduled_at, sent_at, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
    `
	_, err := tx.Exec(query,
		m.ID, campaignID, position, m.TemplateType, m.Subject, m.Body,
		m.TrustStoryScore, m.ScoreRationale, m.SuggestedTiming, m.WordCount,
		m.ScheduledAt, m.SentAt, m.Status,
	)
	return err
}

func (r *CampaignRepository) Get(id string) (*model.Campaign, error) {
	return r.load(r.DB, id, false)
}

type queryer interface {
	QueryRow(query string, args ...interface{}) *sql.Row
	Query(query string, args ...interface{}) (*sql.Rows, error)
}

func (r *CampaignRepository) load(q queryer, id string, forUpdate bool) (*model.Campaign, error) {
	query := `
        SELECT id, user_id, prospect_id, sequence_id, status, personalization, performance, created_at
        FROM campaigns WHERE id=$1
    `
	if forUpdate {
		query += " FOR UPDATE"
	}

	var c model.Campaign
	var personalization, performance []byte
	err := q.QueryRow(query, id).Scan(&c.ID, &c.UserID, &c.ProspectID, &c.SequenceID, &c.Status, &personalization, &performance, &c.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, appErrors.NewCampaignNotFound(id)
		}
		return nil, err
	}
	if err := json.Unmarshal(personalization, &c.Personalization); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(performance, &c.Performance); err != nil {
		return nil, err
	}

	messages, err := loadMessages(q, id)
	if err != nil {
		return nil, err
	}
	c.Messages = messages
	return &c, nil
}

func loadMessages(q queryer, campaignID string) ([]model.GeneratedMessage, error) {
	query := `
        SELECT id, template_type, subject, body, trust_story_score, score_rationale, suggested_timing, word_count, scheduled_at, sent_at, status
        FROM campaign_messages
        WHERE campaign_id=$1
        ORDER BY position
    `
	rows, err := q.Query(query, campaignID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	messages := []model.GeneratedMessage{}
	for rows.Next() {
		var m model.GeneratedMessage
		var sentAt sql.NullTime
		if err := rows.Scan(
			&m.ID, &m.TemplateType, &m.Subject, &m.Body,
			&m.TrustStoryScore, &m.ScoreRationale, &m.SuggestedTiming, &m.WordCount,
			&m.ScheduledAt, &sentAt, &m.Status,
		); err != nil {
			return nil, err
		}
		if sentAt.Valid {
			t := sentAt.Time
			m.SentAt = &t
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *CampaignRepository) ListByUser(userID string) ([]*model.Campaign, error) {
	query := `SELECT id FROM campaigns WHERE user_id=$1 ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	campaigns := []*model.Campaign{}
	for _, id := range ids {
		c, err := r.Get(id)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, c)
	}
	return campaigns, nil
}

// Update loads the campaign under a row lock, applies mutate, and writes
// back the status, performance, and message rows.
func (r *CampaignRepository) Update(id string, mutate func(c *model.Campaign) error) (*model.Campaign, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c, err := r.load(tx, id, true)
	if err != nil {
		return nil, err
	}

	if err := mutate(c); err != nil {
		return nil, err
	}

	performance, err := json.Marshal(c.Performance)
	if err != nil {
		return nil, err
	}
	if _, err := tx.Exec(`UPDATE campaigns SET status=$1, performance=$2 WHERE id=$3`, c.Status, performance, c.ID); err != nil {
		return nil, err
	}

	for _, m := range c.Messages {
		query := `UPDATE campaign_messages SET status=$1, sent_at=$2 WHERE id=$3 AND campaign_id=$4`
		if _, err := tx.Exec(query, m.Status, m.SentAt, m.ID, c.ID); err != nil {
			return nil, fmt.Errorf("failed to update message %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return c, nil
}
