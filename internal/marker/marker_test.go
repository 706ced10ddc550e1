package marker

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{in: "component", want: Component},
		{in: "service", want: Service},
		{in: "llm", want: LLM},
		{in: "storage", want: Storage},
		{in: "Component", wantErr: true},
		{in: "repository", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.in, func(t *testing.T) {
			t.Parallel()
			got, err := Parse(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestIs_OneLevelDerivation(t *testing.T) {
	t.Parallel()

	require.True(t, Component.Is(Component))
	require.True(t, Service.Is(Component), "derived marker must match its base")
	require.True(t, Service.Is(Service))
	require.True(t, LLM.Is(Component))

	require.False(t, Component.Is(Service), "base never matches a derived marker")
	require.False(t, LLM.Is(Service), "siblings do not match")
	require.False(t, Service.Is(""))
}

func TestCategory(t *testing.T) {
	t.Parallel()

	require.Equal(t, "llm", LLM.Category())
	require.Equal(t, "storage", Storage.Category())
	require.Empty(t, Component.Category())
	require.Empty(t, Service.Category())

	require.True(t, LLM.IsProvider())
	require.False(t, Agent.IsProvider())
}

func TestProviderKinds_FixedAndSorted(t *testing.T) {
	t.Parallel()

	require.Equal(t, []Kind{Embedding, LLM, Storage, Tool}, ProviderKinds())
}
