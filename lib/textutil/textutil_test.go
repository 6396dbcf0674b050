package textutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	// decorated full-width portal name vs locally stored name
	require.Equal(
		t,
		NormalizeName("山田 太郎"),
		NormalizeName("○ 山田　太郎"),
	)
	require.True(t, MatchName("ＴＡＮＡＫＡ Ｈａｎａｋｏ", "tanaka hanako"))
	require.False(t, MatchName("山田 太郎", "山田 次郎"))
}

func TestParseDigits(t *testing.T) {
	require.Equal(t, 5500, ParseDigits("¥5,500(税込)"))
	require.Equal(t, 60, ParseDigits("60分"))
	require.Equal(t, 1230, ParseDigits("１２３０"))
	require.Equal(t, 0, ParseDigits("要相談"))
	require.Equal(t, 0, ParseDigits(""))
}

func TestSplitName(t *testing.T) {
	sur, given := SplitName("山田　太郎")
	require.Equal(t, "山田", sur)
	require.Equal(t, "太郎", given)

	sur, given = SplitName("山田")
	require.Equal(t, "山田", sur)
	require.Equal(t, "", given)
}
