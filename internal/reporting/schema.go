// File: internal/reporting/schema.go
package reporting

// ReportSchema pins the wire shape of the JSON report format. Consumers
// integrating with the JSON output should validate against this document;
// the json reporter tests do exactly that.
const ReportSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/xkilldash9x/expectlint/report.schema.json",
  "title": "expectlint JSON report",
  "type": "object",
  "properties": {
    "run_id": { "type": "string", "minLength": 1 },
    "started_at": { "type": "string" },
    "finished_at": { "type": "string" },
    "files_scanned": { "type": "integer", "minimum": 0 },
    "files_failed": { "type": "integer", "minimum": 0 },
    "findings": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id": { "type": "string", "minLength": 1 },
          "run_id": { "type": "string", "minLength": 1 },
          "rule": { "type": "string", "minLength": 1 },
          "kind": {
            "type": "string",
            "enum": ["matcherNotFound", "matcherNotCalled", "notEnoughArgs", "tooManyArgs"]
          },
          "severity": { "type": "string", "enum": ["error", "warning", "info"] },
          "message": { "type": "string", "minLength": 1 },
          "file": { "type": "string", "minLength": 1 },
          "line": { "type": "integer", "minimum": 1 },
          "column": { "type": "integer", "minimum": 1 },
          "snippet": { "type": "string" },
          "fingerprint": { "type": "string", "pattern": "^[0-9a-f]{16}$" },
          "observed_at": { "type": "string" }
        },
        "required": ["id", "run_id", "rule", "kind", "severity", "message", "file", "line", "column", "fingerprint"],
        "additionalProperties": false
      }
    },
    "summary": {
      "type": "object",
      "properties": {
        "total": { "type": "integer", "minimum": 0 },
        "by_severity": {
          "type": "object",
          "additionalProperties": { "type": "integer", "minimum": 0 }
        },
        "by_kind": {
          "type": "object",
          "additionalProperties": { "type": "integer", "minimum": 0 }
        }
      },
      "required": ["total"]
    }
  },
  "required": ["run_id", "started_at", "finished_at", "files_scanned", "files_failed", "findings", "summary"],
  "additionalProperties": false
}`
