package fastx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanFastq(t *testing.T) {
	in := "@read1 some comment\nACGT\n+\nIIII\n@read2\nTTTT\n+\nJJJJ\n"
	rd := NewReader(strings.NewReader(in))

	var recs []Record
	var rec Record
	for rd.Scan(&rec) {
		recs = append(recs, Record{ID: rec.ID, Header: rec.Header, Seq: append([]byte(nil), rec.Seq...), Qual: append([]byte(nil), rec.Qual...)})
	}
	require.NoError(t, rd.Err())
	require.Len(t, recs, 2)

	assert.Equal(t, "read1", recs[0].ID)
	assert.Equal(t, "read1 some comment", recs[0].Header)
	assert.Equal(t, "ACGT", string(recs[0].Seq))
	assert.Equal(t, "IIII", string(recs[0].Qual))

	assert.Equal(t, "read2", recs[1].ID)
	assert.Equal(t, "TTTT", string(recs[1].Seq))
}

func TestScanFasta(t *testing.T) {
	in := ">read1 comment\nACGT\nACGT\n>read2\nTTTT\n"
	rd := NewReader(strings.NewReader(in))

	var recs []Record
	var rec Record
	for rd.Scan(&rec) {
		recs = append(recs, Record{ID: rec.ID, Seq: append([]byte(nil), rec.Seq...)})
	}
	require.NoError(t, rd.Err())
	require.Len(t, recs, 2)

	assert.Equal(t, "read1", recs[0].ID)
	assert.Equal(t, "ACGTACGT", string(recs[0].Seq))
	assert.Equal(t, "read2", recs[1].ID)
	assert.Equal(t, "TTTT", string(recs[1].Seq))
}

func TestScanRejectsInvalidLeadingByte(t *testing.T) {
	rd := NewReader(strings.NewReader("not a record\n"))
	var rec Record
	require.False(t, rd.Scan(&rec))
	assert.Equal(t, ErrInvalid, rd.Err())
}

func TestScanRejectsTruncatedFastq(t *testing.T) {
	rd := NewReader(strings.NewReader("@read1\nACGT\n"))
	var rec Record
	require.False(t, rd.Scan(&rec))
	assert.Equal(t, ErrShort, rd.Err())
}

func TestFastqWriterRoundTrip(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	require.NoError(t, w.WriteFastq(&Record{Header: "read1", Seq: []byte("ACGT"), Qual: []byte("IIII")}))

	rd := NewReader(strings.NewReader(sb.String()))
	var rec Record
	require.True(t, rd.Scan(&rec))
	assert.Equal(t, "ACGT", string(rec.Seq))
	assert.Equal(t, "IIII", string(rec.Qual))
}

func TestFastqWriterPlaceholderQual(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)
	require.NoError(t, w.WriteFastq(&Record{Header: "read1", Seq: []byte("ACGT")}))

	rd := NewReader(strings.NewReader(sb.String()))
	var rec Record
	require.True(t, rd.Scan(&rec))
	assert.Equal(t, "!!!!", string(rec.Qual))
}

func TestBaseID(t *testing.T) {
	assert.Equal(t, "read1", BaseID("read1 extra stuff"))
	assert.Equal(t, "read1", BaseID("read1\textra"))
	assert.Equal(t, "read1", BaseID("read1"))
}

func TestCountRecords(t *testing.T) {
	n, err := CountRecords(strings.NewReader("@a\nAC\n+\nII\n@b\nGT\n+\nII\n"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestCountRecordsEmptyIsError(t *testing.T) {
	_, err := CountRecords(strings.NewReader(""))
	assert.Error(t, err)
}
