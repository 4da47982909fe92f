package records

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestParse_SingleTarget(t *testing.T) {
	text := "TargetID,TrueX,TrueY,TrueZ,EstX,EstY,EstZ,AvgError\nTarget_1,10,20,30,10.5,19.5,30.2,0.5"

	set, err := Parse(text)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())

	want := TargetRecord{
		ID:        "Target_1",
		True:      r3.Vec{X: 10, Y: 20, Z: 30},
		Estimated: r3.Vec{X: 10.5, Y: 19.5, Z: 30.2},
		AvgError:  0.5,
	}
	if diff := cmp.Diff(want, set.At(0)); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_EmptyInputs(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"fully empty", ""},
		{"header only", Header},
		{"header with newline", Header + "\n"},
		{"header with CRLF", Header + "\r\n"},
		{"header then blank lines", Header + "\n\n\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set, err := Parse(tc.text)
			require.NoError(t, err)
			assert.Equal(t, 0, set.Len())
			assert.True(t, set.Empty())
		})
	}
}

func TestParse_RowCountAndRoundTrip(t *testing.T) {
	var b strings.Builder
	b.WriteString(Header + "\n")

	var want []TargetRecord
	for i := 0; i < 25; i++ {
		f := float64(i)
		rec := TargetRecord{
			ID:        fmt.Sprintf("Target_%d", i+1),
			True:      r3.Vec{X: -500 + f*37.123456789, Y: 250.5 - f*1.1, Z: 50 + f/3},
			Estimated: r3.Vec{X: -499.75 + f*37.1, Y: 251 - f*1.05, Z: 50.2 + f/7},
			AvgError:  f * 0.731,
		}
		want = append(want, rec)
		fmt.Fprintf(&b, "%s,%s,%s,%s,%s,%s,%s,%s\n", rec.ID,
			fmtFloat(rec.True.X), fmtFloat(rec.True.Y), fmtFloat(rec.True.Z),
			fmtFloat(rec.Estimated.X), fmtFloat(rec.Estimated.Y), fmtFloat(rec.Estimated.Z),
			fmtFloat(rec.AvgError))
	}

	set, err := Parse(b.String())
	require.NoError(t, err)
	require.Equal(t, len(want), set.Len())

	for i, w := range want {
		got := set.At(i)
		assert.Equal(t, w.ID, got.ID, "row %d order", i)
		assert.InDelta(t, w.True.X, got.True.X, 1e-9)
		assert.InDelta(t, w.True.Y, got.True.Y, 1e-9)
		assert.InDelta(t, w.True.Z, got.True.Z, 1e-9)
		assert.InDelta(t, w.Estimated.X, got.Estimated.X, 1e-9)
		assert.InDelta(t, w.Estimated.Y, got.Estimated.Y, 1e-9)
		assert.InDelta(t, w.Estimated.Z, got.Estimated.Z, 1e-9)
		assert.InDelta(t, w.AvgError, got.AvgError, 1e-9)
	}
}

func fmtFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 9, 64)
}

func TestParse_PreservesOrder(t *testing.T) {
	text := Header + "\n" +
		"Zulu,0,0,0,1,1,1,3\n" +
		"Alpha,0,0,0,1,1,1,1\n" +
		"Mike,0,0,0,1,1,1,2\n"

	set, err := Parse(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"Zulu", "Alpha", "Mike"}, set.IDs())
	assert.Equal(t, []float64{3, 1, 2}, set.Errors())
}

func TestParse_Malformed(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantLine int
		reason   string
	}{
		{
			name:     "lowercase header",
			text:     strings.ToLower(Header) + "\nT,1,2,3,4,5,6,7",
			wantLine: 1,
			reason:   "header",
		},
		{
			name:     "reordered header",
			text:     "TargetID,TrueY,TrueX,TrueZ,EstX,EstY,EstZ,AvgError\n",
			wantLine: 1,
			reason:   "header",
		},
		{
			name:     "missing column in header",
			text:     "TargetID,TrueX,TrueY,TrueZ,EstX,EstY,EstZ\n",
			wantLine: 1,
			reason:   "header",
		},
		{
			name:     "seven fields",
			text:     Header + "\nT1,1,2,3,4,5,6",
			wantLine: 2,
			reason:   "expected 8 fields, got 7",
		},
		{
			name:     "nine fields",
			text:     Header + "\nT1,1,2,3,4,5,6,7,8",
			wantLine: 2,
			reason:   "expected 8 fields, got 9",
		},
		{
			name:     "non-numeric coordinate",
			text:     Header + "\nT1,1,2,3,4,five,6,0.5",
			wantLine: 2,
			reason:   "EstY",
		},
		{
			name:     "NaN error",
			text:     Header + "\nT1,1,2,3,4,5,6,NaN",
			wantLine: 2,
			reason:   "not finite",
		},
		{
			name:     "infinite coordinate",
			text:     Header + "\nT1,+Inf,2,3,4,5,6,1",
			wantLine: 2,
			reason:   "not finite",
		},
		{
			name:     "negative error",
			text:     Header + "\nT1,1,2,3,4,5,6,-0.1",
			wantLine: 2,
			reason:   "negative",
		},
		{
			name:     "empty id",
			text:     Header + "\n,1,2,3,4,5,6,1",
			wantLine: 2,
			reason:   "empty TargetID",
		},
		{
			name:     "duplicate id",
			text:     Header + "\nT1,1,2,3,4,5,6,1\nT2,1,2,3,4,5,6,1\nT1,1,2,3,4,5,6,1",
			wantLine: 4,
			reason:   "duplicate target ID",
		},
		{
			name:     "bad row after good rows",
			text:     Header + "\nT1,1,2,3,4,5,6,1\nT2,1,2,3,4,5,6",
			wantLine: 3,
			reason:   "expected 8 fields",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			set, err := Parse(tc.text)
			require.Error(t, err)
			assert.Equal(t, 0, set.Len())

			var mde *MalformedDataError
			require.True(t, errors.As(err, &mde), "want *MalformedDataError, got %T", err)
			assert.Equal(t, tc.wantLine, mde.Line)
			assert.Contains(t, mde.Reason, tc.reason)
			assert.Contains(t, err.Error(), fmt.Sprintf("line %d", tc.wantLine))
		})
	}
}

func TestParse_BareQuoteIsMalformed(t *testing.T) {
	_, err := Parse(Header + "\nT\"1,1,2,3,4,5,6,1")
	var mde *MalformedDataError
	require.ErrorAs(t, err, &mde)
	assert.Equal(t, 2, mde.Line)
}

func TestParse_ToleratesPaddingAndCRLF(t *testing.T) {
	text := Header + "\r\nT1, 1.5 ,2,3,4,5,6, 0.25\r\n"
	set, err := Parse(text)
	require.NoError(t, err)
	require.Equal(t, 1, set.Len())
	assert.Equal(t, 1.5, set.At(0).True.X)
	assert.Equal(t, 0.25, set.At(0).AvgError)
}

func TestRecordSet_AllIsACopy(t *testing.T) {
	set := NewRecordSet(TargetRecord{ID: "A", AvgError: 1})
	all := set.All()
	all[0].ID = "mutated"
	assert.Equal(t, "A", set.At(0).ID)
}

func TestTargetRecord_Displacement(t *testing.T) {
	r := TargetRecord{
		True:      r3.Vec{X: 1, Y: 2, Z: 3},
		Estimated: r3.Vec{X: 4, Y: 6, Z: 3},
	}
	assert.Equal(t, r3.Vec{X: 3, Y: 4, Z: 0}, r.Offset())
	assert.InDelta(t, 5.0, r.Displacement(), 1e-12)
	assert.False(t, math.IsNaN(TargetRecord{}.Displacement()))
}
