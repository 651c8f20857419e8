package keystore

import (
	"github.com/golang/snappy"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/chronos-tachyon/plainsight"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// storedTable is the on-disk form of a frequency table.
type storedTable struct {
	N       int      `json:"n"`
	Strings []string `json:"strings"`
	Counts  []uint32 `json:"counts"`
}

// encodeTable serializes t as snappy-compressed JSON.
func encodeTable(t *plainsight.Table) ([]byte, error) {
	raw, err := json.Marshal(storedTable{
		N:       t.N(),
		Strings: t.Strings(),
		Counts:  t.Counts(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "keystore: encode table")
	}
	return snappy.Encode(nil, raw), nil
}

// decodeTable is the inverse of encodeTable.  The decoded columns are
// checked against the table invariants, so a damaged value is reported as
// ErrCorrupt rather than producing a table that breaks the codec.
func decodeTable(value []byte) (*plainsight.Table, error) {
	raw, err := snappy.Decode(nil, value)
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "snappy: %v", err)
	}

	var st storedTable
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "json: %v", err)
	}

	t, err := plainsight.NewTable(st.N, st.Strings, st.Counts)
	if err != nil {
		return nil, errors.Wrapf(ErrCorrupt, "%v", err)
	}
	return t, nil
}
