package database

import (
	"context"
	"fmt"
)

var migrations = []string{
	`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`,

	`CREATE TABLE IF NOT EXISTS users (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		username VARCHAR(255) UNIQUE NOT NULL,
		email VARCHAR(255) UNIQUE NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		ip_address VARCHAR(64) NOT NULL DEFAULT '',
		token_version INTEGER NOT NULL DEFAULT 1,
		avatar VARCHAR(500) NOT NULL DEFAULT '',
		mfa_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		global_name VARCHAR(255) NOT NULL DEFAULT '',
		verified BOOLEAN NOT NULL DEFAULT FALSE,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS user_tokens (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		token_hash VARCHAR(255) NOT NULL,
		expires_at TIMESTAMP WITH TIME ZONE NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE TABLE IF NOT EXISTS workspaces (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		owner_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// One row per member per workspace. The unique constraint keeps the
	// manager and team-member sets disjoint by construction.
	`CREATE TABLE IF NOT EXISTS workspace_members (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		role VARCHAR(50) NOT NULL DEFAULT 'team_member',
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
		UNIQUE(workspace_id, user_id)
	)`,

	`CREATE TABLE IF NOT EXISTS collectors (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		workspace_id UUID NOT NULL REFERENCES workspaces(id) ON DELETE CASCADE,
		name VARCHAR(255) NOT NULL,
		source_type VARCHAR(100) NOT NULL,
		allowed_domains TEXT[] NOT NULL DEFAULT '{}',
		form_structure JSONB NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	// Append-only. No foreign key to collectors: deleting a collector must
	// not touch the forms already collected through it.
	`CREATE TABLE IF NOT EXISTS collected_forms (
		id UUID PRIMARY KEY DEFAULT uuid_generate_v4(),
		collector_id UUID NOT NULL,
		workspace_id UUID NOT NULL,
		name VARCHAR(255) NOT NULL,
		source_type VARCHAR(100) NOT NULL,
		source_domain VARCHAR(255),
		form_data JSONB NOT NULL DEFAULT '{}',
		collected_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	)`,

	`CREATE INDEX IF NOT EXISTS idx_user_tokens_user_id ON user_tokens(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workspaces_owner_id ON workspaces(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workspace_members_workspace_id ON workspace_members(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workspace_members_user_id ON workspace_members(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_collectors_workspace_id ON collectors(workspace_id)`,
	`CREATE INDEX IF NOT EXISTS idx_collected_forms_collector_id ON collected_forms(collector_id)`,
	`CREATE INDEX IF NOT EXISTS idx_collected_forms_workspace_id ON collected_forms(workspace_id)`,
}

func (db *DB) Migrate(ctx context.Context) error {
	for i, migration := range migrations {
		if _, err := db.Pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}
	return nil
}
