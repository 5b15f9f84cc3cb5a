package packagemanager

import (
	"testing"

	osinfo "github.com/stockmon/stockmonctl/pkg/os_info"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_resolvePackages(t *testing.T) {
	tests := []struct {
		name         string
		distribution string
		packs        []string
		want         []string
	}{
		{
			name:         "debian_passthrough",
			distribution: DistributionDebian,
			packs:        []string{GitPackage, Python3Package, Python3PipPackage},
			want:         []string{"git", "python3", "python3-pip"},
		},
		{
			name:         "rhel_vim_alias",
			distribution: DistributionCentOS,
			packs:        []string{VimPackage},
			want:         []string{"vim-enhanced"},
		},
		{
			name:         "unknown_package_kept",
			distribution: DistributionUbuntu,
			packs:        []string{"htop"},
			want:         []string{"htop"},
		},
		{
			name:         "duplicates_removed",
			distribution: DistributionUbuntu,
			packs:        []string{GitPackage, GitPackage},
			want:         []string{"git"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result, err := resolvePackages(osinfo.Info{Distribution: test.distribution}, test.packs)

			require.NoError(t, err)
			assert.Equal(t, test.want, result)
		})
	}
}

func Test_distributionFamily(t *testing.T) {
	assert.Equal(t, "debian", distributionFamily(DistributionRaspbian))
	assert.Equal(t, "rhel", distributionFamily(DistributionAmazon))
	assert.Equal(t, "", distributionFamily("plan9"))
}
