package mysql

import (
	"context"
	"fmt"
	"strings"

	"mes-golang/internal/storage"
)

// ResolveNames maps machine and person ids to display names in one merged map.
// Ids missing from the reference tables are simply absent from the result; the
// metrics service substitutes "Unknown" for those.
func (s *Storage) ResolveNames(ctx context.Context, machineIDs, personIDs []string) (map[string]string, error) {
	const op = "storage.mysql.ResolveNames"

	names := make(map[string]string, len(machineIDs)+len(personIDs))

	if err := s.lookupNames(ctx, "SELECT id, name FROM machines WHERE id IN (%s)", machineIDs, names); err != nil {
		return nil, fmt.Errorf("%s: machines: %w", op, err)
	}
	if err := s.lookupNames(ctx, "SELECT id, name FROM persons WHERE id IN (%s)", personIDs, names); err != nil {
		return nil, fmt.Errorf("%s: persons: %w", op, err)
	}

	return names, nil
}

func (s *Storage) lookupNames(ctx context.Context, stmtTmpl string, ids []string, out map[string]string) error {
	if len(ids) == 0 {
		return nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	stmt := fmt.Sprintf(stmtTmpl, placeholders)

	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id, name string
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}
		out[id] = name
	}

	return rows.Err()
}

// GetMachines returns the full machine reference list for the admin panel.
func (s *Storage) GetMachines(ctx context.Context) ([]storage.Machine, error) {
	const op = "storage.mysql.GetMachines"

	rows, err := s.db.QueryContext(ctx, "SELECT id, name FROM machines ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("%s: query failed: %w", op, err)
	}
	defer rows.Close()

	var machines []storage.Machine
	for rows.Next() {
		var m storage.Machine
		if err := rows.Scan(&m.ID, &m.Name); err != nil {
			return nil, fmt.Errorf("%s: scan failed: %w", op, err)
		}
		machines = append(machines, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: rows iteration: %w", op, err)
	}

	return machines, nil
}
