package method

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_AllRegisteredMethods(t *testing.T) {
	tests := []struct {
		m    Method
		want Angles
	}{
		{MWL, Angles{Fajr: -18, Isha: -17}},
		{Karachi, Angles{Fajr: -18, Isha: -18}},
		{Egypt, Angles{Fajr: -19.5, Isha: -17.5}},
		{UmmAlQura, Angles{Fajr: -18.5, IshaRule: IshaRamadanInterval}},
	}

	for _, tt := range tests {
		t.Run(tt.m.String(), func(t *testing.T) {
			got, err := Resolve(tt.m, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_EveryNonCustomMethodResolves(t *testing.T) {
	for _, info := range All() {
		if info.Method == Custom {
			continue
		}
		_, err := Resolve(info.Method, nil)
		assert.NoError(t, err, info.Key)
	}
}

func TestResolve_CustomRequiresAngles(t *testing.T) {
	_, err := Resolve(Custom, nil)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = Resolve(Custom, &Angles{Fajr: -15})
	require.ErrorIs(t, err, ErrInvalidConfiguration, "missing isha angle")

	_, err = Resolve(Custom, &Angles{Isha: -15})
	require.ErrorIs(t, err, ErrInvalidConfiguration, "missing fajr angle")

	_, err = Resolve(Custom, &Angles{Fajr: 15, Isha: -15})
	require.ErrorIs(t, err, ErrInvalidConfiguration, "angle above horizon")
}

func TestResolve_Custom(t *testing.T) {
	got, err := Resolve(Custom, &Angles{Fajr: -15, Isha: -15, IshaRule: IshaRamadanInterval})
	require.NoError(t, err)
	assert.Equal(t, Angles{Fajr: -15, Isha: -15, IshaRule: IshaByAngle}, got)
}

func TestResolve_UnknownMethod(t *testing.T) {
	_, err := Resolve(Method(42), nil)
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Method
		wantErr bool
	}{
		{"karachi", Karachi, false},
		{"MWL", MWL, false},
		{"egypt", Egypt, false},
		{"UmmAlQura", UmmAlQura, false},
		{"umm-al-qura", UmmAlQura, false},
		{"custom", Custom, false},
		{"isna", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMethodString_RoundTrip(t *testing.T) {
	for _, info := range All() {
		got, err := Parse(info.Method.String())
		require.NoError(t, err)
		assert.Equal(t, info.Method, got)
	}
	assert.Len(t, Keys(), 5)
}

func TestAsrShadow(t *testing.T) {
	assert.NoError(t, Shafi.Validate())
	assert.NoError(t, Hanafi.Validate())
	assert.ErrorIs(t, AsrShadow(0).Validate(), ErrInvalidConfiguration)
	assert.ErrorIs(t, AsrShadow(3).Validate(), ErrInvalidConfiguration)

	for in, want := range map[string]AsrShadow{"shafi": Shafi, "Hanafi": Hanafi, "1": Shafi, "2": Hanafi, "standard": Shafi} {
		got, err := ParseAsrShadow(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseAsrShadow("maliki")
	assert.ErrorIs(t, err, ErrInvalidConfiguration)
}
