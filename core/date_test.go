package core

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodayIST(t *testing.T) {
	defer func() { NowFunc = time.Now }()

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{name: "utc evening is next day in IST", now: time.Date(2024, 1, 1, 19, 0, 0, 0, time.UTC), want: "2024-01-02"},
		{name: "utc just before switch", now: time.Date(2024, 1, 1, 18, 29, 59, 0, time.UTC), want: "2024-01-01"},
		{name: "utc exactly at switch", now: time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC), want: "2024-01-02"},
		{
			name: "caller timezone is ignored",
			now:  time.Date(2024, 3, 10, 22, 0, 0, 0, time.FixedZone("PST", -8*60*60)),
			want: "2024-03-11",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			now := tt.now
			NowFunc = func() time.Time { return now }
			assert.Equal(t, tt.want, TodayIST().String())
		})
	}
}

func TestDate_Compare(t *testing.T) {
	d := MustParseDate("2024-05-10")
	tests := []struct {
		other string
		want  int
	}{
		{other: "2024-05-10", want: 0},
		{other: "2024-05-09", want: 1},
		{other: "2024-05-11", want: -1},
		{other: "2023-12-31", want: 1},
		{other: "2024-06-01", want: -1},
	}
	for _, tt := range tests {
		t.Run(tt.other, func(t *testing.T) {
			assert.Equal(t, tt.want, d.Compare(MustParseDate(tt.other)))
		})
	}
	assert.True(t, d.Before(MustParseDate("2024-05-11")))
	assert.True(t, d.After(MustParseDate("2024-05-09")))
	assert.Equal(t, "2025-05-10", d.AddYears(1).String())
	assert.Equal(t, "2024-06-01", MustParseDate("2024-05-31").AddDays(1).String())
}

func TestDate_JSON(t *testing.T) {
	type payload struct {
		Day *Date `json:"day"`
	}

	data, err := json.Marshal(payload{Day: MustParseDate("2024-01-02").Ptr()})
	require.NoError(t, err)
	assert.JSONEq(t, `{"day": "2024-01-02"}`, string(data))

	var p payload
	require.NoError(t, json.Unmarshal([]byte(`{"day": "2024-02-29"}`), &p))
	require.NotNil(t, p.Day)
	assert.Equal(t, "2024-02-29", p.Day.String())

	assert.Error(t, json.Unmarshal([]byte(`{"day": "29/02/2024"}`), &p))
}

func TestDate_Scan(t *testing.T) {
	tests := []struct {
		name    string
		src     interface{}
		want    Date
		wantErr bool
	}{
		{name: "nil", src: nil, want: Date{}},
		{name: "time", src: time.Date(2024, 7, 4, 0, 0, 0, 0, time.UTC), want: MustParseDate("2024-07-04")},
		{name: "bytes", src: []byte("2024-07-04"), want: MustParseDate("2024-07-04")},
		{name: "timestamp string", src: "2024-07-04T00:00:00Z", want: MustParseDate("2024-07-04")},
		{name: "garbage", src: 42, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Date
			err := d.Scan(tt.src)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
		})
	}
}
