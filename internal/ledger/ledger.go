package ledger

import (
	"encoding/csv"
	"os"
	"sync"

	"kycboard/internal/models"
)

var header = []string{"Name", "Mobile", "Account Number", "IFSC Code", "Bank Name"}

// Recorder appends one line per registration to a flat CSV file. The header
// row is written only when the file is first created. Concurrent
// registrations share the file, so appends are serialized.
type Recorder struct {
	mu   sync.Mutex
	path string
}

// NewRecorder creates a Recorder writing to the given path. The file itself
// is created lazily on the first append.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// Append records a registered user's details.
func (r *Recorder) Append(user models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, statErr := os.Stat(r.path)
	isNew := os.IsNotExist(statErr)

	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if isNew {
		if err := w.Write(header); err != nil {
			return err
		}
	}
	if err := w.Write([]string{user.Name, user.Mobile, user.AccountNumber, user.IFSCCode, user.BankName}); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}
