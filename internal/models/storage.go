package models

// StateStorage is the on-disk envelope for everything the daemon needs to
// resume after a restart: device identity, the category rule table, the
// content-classification cache, and the live session snapshot (nil when no
// session is active).
type StateStorage struct {
	DeviceID     string         `json:"deviceId"`
	LockedIn     bool           `json:"lockedIn"`
	Categories   []Category     `json:"categories,omitempty"`
	ContentCache []ContentEntry `json:"contentClassifications,omitempty"`
	Live         *LiveSnapshot  `json:"live,omitempty"`
}
