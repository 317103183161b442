package policy

import (
	"github.com/LemonieOff/ARDeco-server-sub000/internal/domain/models"
)

// Filter applies the view rules of Decide across a candidate list in
// one pass: items whose owner is in the precomputed blocked set are
// dropped, then private items are dropped unless owned by the actor or
// the actor is an admin. With the set built once per request this is
// O(n + setSize) instead of O(n) block-graph queries.
func Filter[T Resource](actor *models.Actor, blocked map[int64]struct{}, items []T) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		owner := item.OwnerID()
		if owner != actor.ID && !actor.IsAdmin() {
			if _, hit := blocked[owner]; hit {
				continue
			}
			if !item.Visible() {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

// MaskCommentAuthors blanks each comment's author last name unless the
// viewer is the author, an admin, or the author opted into wall
// display. allows reports that opt-in per author id.
//
// This is a presentation transform, not an access rule: it must run on
// the already-filtered feed, never before filtering, so that a blanked
// name can never be confused with an omitted comment.
func MaskCommentAuthors(viewer *models.Actor, comments []models.Comment, allows func(userID int64) bool) {
	for i := range comments {
		c := &comments[i]
		if c.UserID == viewer.ID || viewer.IsAdmin() {
			continue
		}
		if allows != nil && allows(c.UserID) {
			continue
		}
		c.AuthorLastName = ""
	}
}
