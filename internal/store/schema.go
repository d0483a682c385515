package store

const schema = `
CREATE TABLE IF NOT EXISTS deployments (
    exe_path TEXT PRIMARY KEY,
    exe_dir TEXT NOT NULL,
    arch INTEGER NOT NULL,
    api_version INTEGER NOT NULL,
    dxvk_version TEXT,
    package_dir TEXT,
    files TEXT,
    deployed_at TIMESTAMP NOT NULL
);

CREATE TABLE IF NOT EXISTS candidates (
    exe_path TEXT PRIMARY KEY,
    root TEXT NOT NULL,
    arch INTEGER,
    api_version INTEGER,
    note TEXT,
    discovered_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_deployments_dir ON deployments(exe_dir);
CREATE INDEX IF NOT EXISTS idx_candidates_root ON candidates(root);
`
