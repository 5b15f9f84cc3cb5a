package packagemanager

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"sync"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	osinfo "github.com/stockmon/stockmonctl/pkg/os_info"
)

//go:embed packages/*.yaml
var packagesFS embed.FS

type packagesConfig struct {
	Packages []PackageConfig `yaml:"packages"`
}

type PackageConfig struct {
	Name    string   `yaml:"name"`
	Install []string `yaml:"install"`
}

var (
	aliasCache      = make(map[string]map[string][]string)
	aliasCacheMutex sync.Mutex
)

// extended resolves canonical package names into the names the host
// distribution actually ships before handing them to the underlying
// package manager.
type extended struct {
	inner  PackageManager
	osInfo osinfo.Info
}

//nolint:ireturn,nolintlint
func newExtended(inner PackageManager, osInfo osinfo.Info) PackageManager {
	return &extended{
		inner:  inner,
		osInfo: osInfo,
	}
}

func (e *extended) Install(ctx context.Context, packs ...string) error {
	resolved, err := resolvePackages(e.osInfo, packs)
	if err != nil {
		log.Println("Failed to resolve package aliases:", err)
		resolved = packs
	}

	return e.inner.Install(ctx, resolved...)
}

func (e *extended) CheckForUpdates(ctx context.Context) error {
	return e.inner.CheckForUpdates(ctx)
}

func resolvePackages(osInfo osinfo.Info, packs []string) ([]string, error) {
	aliases, err := loadAliases(osInfo)
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(packs))
	for _, pack := range packs {
		if replacement, ok := aliases[pack]; ok {
			result = append(result, replacement...)

			continue
		}
		result = append(result, pack)
	}

	return lo.Uniq(result), nil
}

func loadAliases(osInfo osinfo.Info) (map[string][]string, error) {
	family := distributionFamily(osInfo.Distribution)

	aliasCacheMutex.Lock()
	defer aliasCacheMutex.Unlock()

	if cached, exists := aliasCache[family]; exists {
		return cached, nil
	}

	aliases := make(map[string][]string)

	filesToLoad := []string{"packages/default.yaml"}
	if family != "" {
		filesToLoad = append(filesToLoad, fmt.Sprintf("packages/%s.yaml", family))
	}

	for _, file := range filesToLoad {
		data, err := packagesFS.ReadFile(file)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}

			return nil, err
		}

		cfg := packagesConfig{}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, err
		}

		for _, p := range cfg.Packages {
			aliases[p.Name] = p.Install
		}
	}

	aliasCache[family] = aliases

	return aliases, nil
}

func distributionFamily(distribution string) string {
	switch distribution {
	case DistributionDebian, DistributionUbuntu, DistributionRaspbian:
		return "debian"
	case DistributionCentOS, DistributionAlmaLinux, DistributionRockyLinux,
		DistributionFedora, DistributionAmazon:
		return "rhel"
	}

	return ""
}
