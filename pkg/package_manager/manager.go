package packagemanager

import (
	"context"

	contextInternal "github.com/stockmon/stockmonctl/internal/context"
	"github.com/stockmon/stockmonctl/pkg/utils"
)

type PackageManager interface {
	Install(ctx context.Context, packs ...string) error
	CheckForUpdates(ctx context.Context) error
}

//nolint:ireturn,nolintlint
func Load(ctx context.Context) (PackageManager, error) {
	osInfo := contextInternal.OSInfoFromContext(ctx)

	switch osInfo.Distribution {
	case DistributionDebian, DistributionUbuntu, DistributionRaspbian:
		return newExtended(&apt{}, osInfo), nil
	case DistributionCentOS, DistributionAlmaLinux, DistributionRockyLinux,
		DistributionFedora, DistributionAmazon:
		return newExtended(newDNF(), osInfo), nil
	}

	// Unknown distribution: probe both families, first success wins.
	aptAvailable := utils.IsCommandAvailable("apt-get")
	dnfAvailable := utils.IsCommandAvailable("dnf") || utils.IsCommandAvailable("yum")

	switch {
	case aptAvailable && dnfAvailable:
		return newFallbackPackageManager(
			newExtended(&apt{}, osInfo),
			newExtended(newDNF(), osInfo),
		), nil
	case aptAvailable:
		return newExtended(&apt{}, osInfo), nil
	case dnfAvailable:
		return newExtended(newDNF(), osInfo), nil
	}

	return nil, NewErrUnsupportedDistribution(osInfo.Distribution)
}
