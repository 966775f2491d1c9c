package reconcile

import (
	"github.com/studyforge/core/internal/models"
	"github.com/studyforge/core/internal/pkg/blobstore"
)

// Update rewrites one row's payload to point at the current blob.
type Update struct {
	RowID   string
	Content models.ContentPayload
}

// Plan is the set of database and storage changes that bring a session's
// monologue rows in line with its stored audio blobs.
type Plan struct {
	Inserts     []models.GeneratedContentModel
	Updates     []Update
	StaleRowIDs []string
	StalePaths  []string
}

// Empty reports whether applying the plan would change nothing.
func (p Plan) Empty() bool {
	return len(p.Inserts) == 0 && len(p.Updates) == 0 && len(p.StaleRowIDs) == 0
}

// Prefix is the storage key prefix holding one session's monologue audio.
func Prefix(sessionID string) string {
	return "monologues/" + sessionID + "/"
}

// BuildPlan diffs the session's monologue rows against the blobs actually in
// storage. Blobs without a row become inserts, rows whose URL drifted become
// updates, and rows whose blob is gone become deletions (blob path included
// so a half-deleted pair can be cleaned up too). Rows without a pathname in
// their payload are left untouched; they were written by the pipeline before
// any audio existed under this prefix.
func BuildPlan(sessionID, userID string, rows []models.GeneratedContentModel, objects []blobstore.Object) Plan {
	byPath := make(map[string]*models.GeneratedContentModel)
	for i := range rows {
		row := &rows[i]
		if row.Type != models.ContentKindMonologue || row.Content.Pathname == "" {
			continue
		}
		byPath[row.Content.Pathname] = row
	}

	var plan Plan
	matched := make(map[string]bool)

	for _, obj := range objects {
		content := models.ContentPayload{
			AudioURL: obj.URL,
			Pathname: obj.Pathname,
		}

		row, ok := byPath[obj.Pathname]
		if !ok {
			plan.Inserts = append(plan.Inserts, models.GeneratedContentModel{
				SessionID: sessionID,
				UserID:    userID,
				Type:      models.ContentKindMonologue,
				Content:   content,
			})
			continue
		}

		matched[obj.Pathname] = true
		if row.Content.AudioURL != obj.URL {
			plan.Updates = append(plan.Updates, Update{RowID: row.ID, Content: content})
		}
	}

	// Keep row order so the plan is deterministic.
	for i := range rows {
		row := &rows[i]
		if row.Type != models.ContentKindMonologue || row.Content.Pathname == "" {
			continue
		}
		if !matched[row.Content.Pathname] {
			plan.StaleRowIDs = append(plan.StaleRowIDs, row.ID)
			plan.StalePaths = append(plan.StalePaths, row.Content.Pathname)
		}
	}
	return plan
}
