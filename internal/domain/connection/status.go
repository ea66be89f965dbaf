package connection

import "github.com/google/uuid"

// ViewerStatus is the relationship of a candidate user as seen by the viewer.
type ViewerStatus string

const (
	ViewNone      ViewerStatus = "none"
	ViewPending   ViewerStatus = "pending"
	ViewAccept    ViewerStatus = "accept"
	ViewConnected ViewerStatus = "connected"
)

// Find returns the first connection linking viewer and candidate, or nil.
func Find(viewer, candidate uuid.UUID, conns []*Connection) *Connection {
	for _, c := range conns {
		if c.Between(viewer, candidate) {
			return c
		}
	}
	return nil
}

// DeriveStatus scans conns for a record between viewer and candidate.
func DeriveStatus(viewer, candidate uuid.UUID, conns []*Connection) (ViewerStatus, *Connection) {
	c := Find(viewer, candidate, conns)
	if c == nil {
		return ViewNone, nil
	}
	switch {
	case c.Status == StatusAccepted:
		return ViewConnected, c
	case c.ConnectedUserID == viewer:
		return ViewAccept, c
	default:
		return ViewPending, c
	}
}
