package employee

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NewEmployeeCode builds the human-facing identifier printed on badges
// and reports, e.g. EMP-MF3K2A1B-9F2C. Uniqueness is backed by the
// employee_code column constraint.
func NewEmployeeCode() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 36)
	buf := make([]byte, 2)
	if _, err := rand.Read(buf); err != nil {
		return strings.ToUpper(fmt.Sprintf("EMP-%s", ts))
	}
	return strings.ToUpper(fmt.Sprintf("EMP-%s-%s", ts, hex.EncodeToString(buf)))
}
