package aggregate

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strconv"

	"golang.org/x/text/unicode/norm"
)

// digestDomain versions the fingerprint; bump when the canonical shape of
// a DayResult changes.
const digestDomain = "screenday/day/v1"

// Fingerprint returns a stable content digest of the derived rows.
//
// The digest is SHA-256 with domain separation over a canonical JSON form:
// object keys sorted, strings NFC-normalized, integers only, no floats and
// no nulls. Two runs over the same event set therefore produce identical
// fingerprints regardless of wall time; UpdatedAt stamps are excluded.
//
// The persister records the fingerprint as a checkpoint and the live
// projector uses it to suppress republishing unchanged summaries.
func (r DayResult) Fingerprint() string {
	h := sha256.New()
	h.Write([]byte(digestDomain))
	h.Write([]byte{0x00})
	h.Write(r.CanonicalJSON())
	return hex.EncodeToString(h.Sum(nil))
}

// CanonicalJSON returns the canonical serialized form the fingerprint
// hashes. Golden tests compare it directly.
func (r DayResult) CanonicalJSON() []byte {
	var buf bytes.Buffer
	writeCanonical(&buf, r.canonical())
	return buf.Bytes()
}

// canonical builds the fingerprint value tree. Only strings, int64s,
// []any, and map[string]any appear in it.
func (r DayResult) canonical() map[string]any {
	scrolls := make([]any, len(r.Scrolls))
	for i, s := range r.Scrolls {
		scrolls[i] = map[string]any{
			"package":    s.PackageName,
			"start":      s.StartTime,
			"end":        s.EndTime,
			"amount":     s.ScrollAmount,
			"end_reason": string(s.EndReason),
			"data_type":  string(s.DataType),
		}
	}
	usage := make([]any, len(r.Usage))
	for i, u := range r.Usage {
		usage[i] = map[string]any{
			"package":       u.PackageName,
			"usage":         u.UsageTime,
			"active":        u.ActiveTime,
			"opens":         int64(u.OpenCount),
			"notifications": int64(u.NotificationCount),
		}
	}
	return map[string]any{
		"date":    r.Date,
		"scrolls": scrolls,
		"usage":   usage,
		"summary": map[string]any{
			"total_usage":   r.Summary.TotalUsageTime,
			"unlocks":       int64(r.Summary.UnlockCount),
			"first_unlock":  r.Summary.FirstUnlock,
			"last_unlock":   r.Summary.LastUnlock,
			"notifications": int64(r.Summary.NotificationCount),
			"app_opens":     int64(r.Summary.AppOpens),
		},
	}
}

// writeCanonical serializes the restricted value tree deterministically.
// It only has to handle the shapes canonical() produces.
func writeCanonical(buf *bytes.Buffer, v any) {
	switch val := v.(type) {
	case string:
		buf.WriteString(strconv.Quote(norm.NFC.String(val)))
	case int64:
		buf.WriteString(strconv.FormatInt(val, 10))
	case []any:
		buf.WriteByte('[')
		for i, elem := range val {
			if i > 0 {
				buf.WriteByte(',')
			}
			writeCanonical(buf, elem)
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(k))
			buf.WriteByte(':')
			writeCanonical(buf, val[k])
		}
		buf.WriteByte('}')
	default:
		// canonical() never emits other types.
		panic("fingerprint: unsupported canonical type")
	}
}
