package stockmon

// Version is set at build time via ldflags.
var Version = "development"

const SourceRepository = "https://github.com/stockmon/stock-monitor.git"

// SourceArchiveURL is used when git cannot be installed and the
// checkout has to be fetched as a plain archive instead.
const SourceArchiveURL = "https://github.com/stockmon/stock-monitor/archive/refs/heads/main.tar.gz"

const ReleasesAPIURL = "https://api.github.com/repos/stockmon/stockmonctl/releases"
