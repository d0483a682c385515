package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Deployment operations

// InsertDeployment inserts or replaces a deployment record.
func (s *Store) InsertDeployment(d *Deployment) error {
	filesJSON, err := json.Marshal(d.Files)
	if err != nil {
		return fmt.Errorf("failed to marshal file list: %w", err)
	}

	query := `
		INSERT OR REPLACE INTO deployments
		(exe_path, exe_dir, arch, api_version, dxvk_version, package_dir, files, deployed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = s.db.Exec(query,
		d.ExePath,
		d.ExeDir,
		d.Arch,
		d.APIVersion,
		d.DXVKVersion,
		d.PackageDir,
		string(filesJSON),
		d.DeployedAt.Format(time.RFC3339),
	)
	return wrapQueryErr(fmt.Sprintf("insert deployment %s", d.ExePath), err)
}

// GetDeployment retrieves the deployment record for an executable path.
func (s *Store) GetDeployment(exePath string) (*Deployment, error) {
	query := `
		SELECT exe_path, exe_dir, arch, api_version, dxvk_version, package_dir, files, deployed_at
		FROM deployments
		WHERE exe_path = ?
	`

	var d Deployment
	var filesJSON, deployedAt string

	err := s.db.QueryRow(query, exePath).Scan(
		&d.ExePath,
		&d.ExeDir,
		&d.Arch,
		&d.APIVersion,
		&d.DXVKVersion,
		&d.PackageDir,
		&filesJSON,
		&deployedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("no deployment recorded for %s", exePath)
	}
	if err != nil {
		return nil, wrapQueryErr(fmt.Sprintf("get deployment %s", exePath), err)
	}

	if d.DeployedAt, err = time.Parse(time.RFC3339, deployedAt); err != nil {
		return nil, fmt.Errorf("failed to parse deployed_at for %s: %w", exePath, err)
	}
	if err := json.Unmarshal([]byte(filesJSON), &d.Files); err != nil {
		return nil, fmt.Errorf("failed to unmarshal file list for %s: %w", exePath, err)
	}

	return &d, nil
}

// ListDeployments returns all deployment records ordered by path.
func (s *Store) ListDeployments() ([]*Deployment, error) {
	query := `
		SELECT exe_path, exe_dir, arch, api_version, dxvk_version, package_dir, files, deployed_at
		FROM deployments
		ORDER BY exe_path
	`

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, wrapQueryErr("list deployments", err)
	}
	defer rows.Close()

	var deployments []*Deployment
	for rows.Next() {
		var d Deployment
		var filesJSON, deployedAt string

		if err := rows.Scan(
			&d.ExePath,
			&d.ExeDir,
			&d.Arch,
			&d.APIVersion,
			&d.DXVKVersion,
			&d.PackageDir,
			&filesJSON,
			&deployedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan deployment row: %w", err)
		}

		if d.DeployedAt, err = time.Parse(time.RFC3339, deployedAt); err != nil {
			return nil, fmt.Errorf("failed to parse deployed_at for %s: %w", d.ExePath, err)
		}
		if err := json.Unmarshal([]byte(filesJSON), &d.Files); err != nil {
			return nil, fmt.Errorf("failed to unmarshal file list for %s: %w", d.ExePath, err)
		}

		deployments = append(deployments, &d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deployments: %w", err)
	}
	return deployments, nil
}

// DeleteDeploymentsInDir removes all deployment records whose destination is
// the given directory. Used by the remove command, which operates on the
// executable's directory rather than a single path.
func (s *Store) DeleteDeploymentsInDir(dir string) (int64, error) {
	result, err := s.db.Exec(`DELETE FROM deployments WHERE exe_dir = ?`, dir)
	if err != nil {
		return 0, wrapQueryErr(fmt.Sprintf("delete deployments in %s", dir), err)
	}
	return result.RowsAffected()
}

// Candidate operations

// InsertCandidate inserts or replaces a discovered candidate.
func (s *Store) InsertCandidate(c *Candidate) error {
	query := `
		INSERT OR REPLACE INTO candidates
		(exe_path, root, arch, api_version, note, discovered_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.Exec(query,
		c.ExePath,
		c.Root,
		c.Arch,
		c.APIVersion,
		c.Note,
		c.DiscoveredAt.Format(time.RFC3339),
	)
	return wrapQueryErr(fmt.Sprintf("insert candidate %s", c.ExePath), err)
}

// ListCandidates returns the candidates discovered under root, or all
// candidates when root is empty.
func (s *Store) ListCandidates(root string) ([]*Candidate, error) {
	query := `
		SELECT exe_path, root, arch, api_version, note, discovered_at
		FROM candidates
	`
	var args []any
	if root != "" {
		query += ` WHERE root = ?`
		args = append(args, root)
	}
	query += ` ORDER BY exe_path`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, wrapQueryErr("list candidates", err)
	}
	defer rows.Close()

	var candidates []*Candidate
	for rows.Next() {
		var c Candidate
		var discoveredAt string
		if err := rows.Scan(&c.ExePath, &c.Root, &c.Arch, &c.APIVersion, &c.Note, &discoveredAt); err != nil {
			return nil, fmt.Errorf("failed to scan candidate row: %w", err)
		}
		if c.DiscoveredAt, err = time.Parse(time.RFC3339, discoveredAt); err != nil {
			return nil, fmt.Errorf("failed to parse discovered_at for %s: %w", c.ExePath, err)
		}
		candidates = append(candidates, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}

// DeleteCandidate removes a candidate record.
func (s *Store) DeleteCandidate(exePath string) error {
	_, err := s.db.Exec(`DELETE FROM candidates WHERE exe_path = ?`, exePath)
	return wrapQueryErr(fmt.Sprintf("delete candidate %s", exePath), err)
}
