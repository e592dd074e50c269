package app

import (
	"context"
	"fmt"

	"github.com/Gourabhere/HijibijiSocietyClean/backend/shared/go-repositories"
)

// EnsureSchema creates the housekeeping tables when missing. Safe to call on
// every boot.
func EnsureSchema(ctx context.Context, db repositories.DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
CREATE TABLE IF NOT EXISTS staff_members (
    id               BIGSERIAL PRIMARY KEY,
    name             TEXT NOT NULL,
    role             TEXT NOT NULL DEFAULT 'Housekeeper',
    avatar           TEXT,
    block_assignment TEXT
);

CREATE TABLE IF NOT EXISTS task_logs (
    id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
    task_id     TEXT NOT NULL,
    staff_id    BIGINT NOT NULL REFERENCES staff_members(id),
    timestamp   BIGINT NOT NULL,
    status      TEXT NOT NULL DEFAULT 'COMPLETED',
    image_url   TEXT,
    ai_feedback TEXT,
    ai_rating   DOUBLE PRECISION,
    block       INTEGER,
    floor       INTEGER,
    flat        TEXT
);
CREATE INDEX IF NOT EXISTS idx_task_logs_timestamp ON task_logs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_task_logs_staff ON task_logs(staff_id, timestamp DESC);

CREATE TABLE IF NOT EXISTS punch_logs (
    id        TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
    staff_id  BIGINT NOT NULL REFERENCES staff_members(id),
    type      TEXT NOT NULL CHECK (type IN ('IN', 'OUT')),
    timestamp BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_punch_logs_timestamp ON punch_logs(timestamp DESC);

CREATE TABLE IF NOT EXISTS supply_requests (
    id           TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
    item         TEXT NOT NULL,
    quantity     TEXT NOT NULL,
    urgency      TEXT NOT NULL CHECK (urgency IN ('LOW', 'MEDIUM', 'HIGH')),
    status       TEXT NOT NULL DEFAULT 'OPEN' CHECK (status IN ('OPEN', 'FULFILLED', 'REJECTED')),
    requester_id BIGINT NOT NULL,
    timestamp    BIGINT NOT NULL,
    row_version  BIGINT NOT NULL DEFAULT 1
);
CREATE INDEX IF NOT EXISTS idx_supply_requests_timestamp ON supply_requests(timestamp DESC);
`
