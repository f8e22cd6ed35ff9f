package pumpfun

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFromCPILogTrade(t *testing.T) {
	log := "2K7nL28PxCW8ejnyCeuMpbXwJKzXo9q1ecEyRsXKe7VYaxLjCqTrMCp9pnwrwTG7rmaRTa1vcTqa8LGDfNZ9bpcKgSPgNDe3MrFn57HPpTzriKWACnH99YDM7dfTpxwRoCQTrs6BSdGSXgusW9Jbz1yAV9D32MZ62azsiK16Gksbq7cinYkugTfQDJM5"
	evt, err := FromCPILog(log)
	require.NoError(t, err)
	require.NotNil(t, evt.Trade)
}

func TestFromCPILogCreate(t *testing.T) {
	log := "3ck7szVsdFfNhc7Yijezdmy73fWycmttUN6UNb1vQjPYZxr67fnmDnC2MgoRbX4RAzyCtqLwnaKqkRfyCF34WAB9Wxsm1aojum6cU4aMuUKwnuDzE39zoQV1G36mGdwspN52tiueFdcB7CMNK1ejYzzdM6ppYRK1Miay5UirZTWuNZESJz5Ci9smPWQoRvftDYvciK7WYg4TcVkteadFBcMzywKFWBhwshyyzc6cMv1brCM3G5nVNycLKtVJkwcnfLaLCz469dhdyZ9PARNfvSiGHZ74GBJecXq8BYu3Nmh36hB3Qt3fnbdvQFhCtkCD68ziVTzy8XbvedYsRvgijDSJXTU1h8FPzzebXXwKzgrb"
	evt, err := FromCPILog(log)
	require.NoError(t, err)
	require.NotNil(t, evt.Create)
}

func TestFromCPILogComplete(t *testing.T) {
	log := "YeADJEDSy5WzCFuDLrfFZ2pQG5GsJCGudQvZj1RHwD74UBRabt1MxxGPoTRn432WCj9Vf1P127Qp6qABSeNoFzvj4XikFhDkePCMjuTk178GtBLsbaKC7tt4yJvwcQnuY7bSqHLsyadheV3Z4YJjPnbPJ6PBMXrvEyMZ"
	evt, err := FromCPILog(log)
	require.NoError(t, err)
	require.NotNil(t, evt.Complete)
}

func TestFromCPILogUnrecognized(t *testing.T) {
	_, err := FromCPILog(base58Encode16Zeros())
	require.Error(t, err)
}

func base58Encode16Zeros() string {
	// 16 zero bytes base58-encodes to a run of '1's, decoding back to a
	// discriminator that matches none of the known events.
	return "1111111111111111"
}
