package constants

// Raw queries for the sqlx repositories. Placeholders are rebound per driver.
const (
	GetStatusByApiKey = `
	SELECT id, status FROM api_keys WHERE id = ?
	`

	InsertApiKey = `
	INSERT INTO api_keys (id, label, status) VALUES (?, ?, ?)
	`

	RevokeApiKey = `
	UPDATE api_keys SET status = ? WHERE id = ?
	`
)
