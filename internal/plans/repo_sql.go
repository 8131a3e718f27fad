package plans

import (
	"database/sql"
	"encoding/json"
	"fmt"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// encodePlan renders the JSON columns shared by the SQL repositories.
func encodePlan(p Plan) (request, result string, exportKey sql.NullString, err error) {
	reqJSON, err := json.Marshal(p.Input)
	if err != nil {
		return "", "", exportKey, fmt.Errorf("encode plan input: %w", err)
	}
	resJSON, err := json.Marshal(p.Result)
	if err != nil {
		return "", "", exportKey, fmt.Errorf("encode plan result: %w", err)
	}
	if p.ExportKey != "" {
		exportKey = sql.NullString{String: p.ExportKey, Valid: true}
	}
	return string(reqJSON), string(resJSON), exportKey, nil
}

// decodePlan fills the JSON-backed fields of p.
func decodePlan(p *Plan, request, result string, exportKey sql.NullString) error {
	if err := json.Unmarshal([]byte(request), &p.Input); err != nil {
		return fmt.Errorf("decode plan %s input: %w", p.ID, err)
	}
	if err := json.Unmarshal([]byte(result), &p.Result); err != nil {
		return fmt.Errorf("decode plan %s result: %w", p.ID, err)
	}
	if exportKey.Valid {
		p.ExportKey = exportKey.String
	}
	if p.ExplanationSource == "" {
		p.ExplanationSource = ExplanationSourceRules
	}
	return nil
}

func reversePlans(plans []Plan) {
	for i, j := 0, len(plans)-1; i < j; i, j = i+1, j-1 {
		plans[i], plans[j] = plans[j], plans[i]
	}
}
