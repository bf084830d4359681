package store

import "os"

// Fingerprint holds stat-based identity for the DB file, used to
// invalidate the match cache whenever the database is rebuilt.
type Fingerprint struct {
	Size    int64
	ModTime int64
}

// StatFile builds a Fingerprint from an on-disk file's size and
// modification time.
func StatFile(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Fingerprint{}, err
	}
	return Fingerprint{Size: info.Size(), ModTime: info.ModTime().UnixNano()}, nil
}
