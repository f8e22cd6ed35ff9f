package raydium

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeSwapBaseIn(t *testing.T) {
	evt, err := Decode("A1x8BAAAAAAAqgAAAAAAAAABAAAAAAAAAFx8BAAAAAAA4kxOVRsAAADq2uJNY4UAAOoAAAAAAAAA")
	require.NoError(t, err)
	require.Equal(t, LogSwapBaseIn, evt.Kind)
	require.NotNil(t, evt.SwapBaseIn)
	require.EqualValues(t, 3, evt.SwapBaseIn.LogType)
	require.EqualValues(t, 293980, evt.SwapBaseIn.AmountIn)
	require.EqualValues(t, 170, evt.SwapBaseIn.MinimumOut)
	require.EqualValues(t, 1, evt.SwapBaseIn.Direction)
	require.EqualValues(t, 234, evt.SwapBaseIn.OutAmount)
}

func TestDecodeWithdraw(t *testing.T) {
	evt, err := Decode("Aowy0KQAAAAAjDLQpAAAAAAOVgk3AAAAAOn/ZSQQAAAA1yZyNwEAAABRxNj660cAAAAAAAAAAAAAxgFXLwAAAAAAAAAAAAAAAHLmHx0AAAAAZkDQiggAAAA=")
	require.NoError(t, err)
	require.Equal(t, LogWithdraw, evt.Kind)
	require.NotNil(t, evt.Withdraw)
	require.EqualValues(t, 2, evt.Withdraw.LogType)
	require.EqualValues(t, 488629874, evt.Withdraw.OutCoin)
	require.EqualValues(t, 36688642150, evt.Withdraw.OutPc)
}

func TestDecodeInit(t *testing.T) {
	evt, err := Decode("AMrTUGcAAAAABgkQJwAAAAAAAADKmjsAAAAAFCn1TAMAAAAAypo7AAAAABVwbJyjtAt7hWR5/LLLQauTYDcNHIrAZ8tELy5TTWd5")
	require.NoError(t, err)
	require.Equal(t, LogInit, evt.Kind)
	require.NotNil(t, evt.Init)
	require.EqualValues(t, 0, evt.Init.LogType)
	require.EqualValues(t, 1000000000, evt.Init.CoinAmount)
	require.EqualValues(t, 14176037140, evt.Init.PcAmount)
}

func TestDecodeUnknownType(t *testing.T) {
	_, err := Decode("//8=")
	require.Error(t, err)
}
