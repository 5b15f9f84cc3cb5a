//go:build linux || darwin

package stockmon

const DefaultServiceName = "stock-monitor"
const DefaultUnitFilePath = "/etc/systemd/system/stock-monitor.service"

const DefaultCheckoutDirName = "stock-monitor"
const DefaultBranch = "main"

const ConfigFileName = "config.json"
const ConfigExampleFileName = "config.json.example"
const RequirementsFileName = "requirements.txt"

// EntryPointFileName is the script the generated service runs. The
// monitored program keeps its original (non-ASCII) file name.
const EntryPointFileName = "底分型微信通知.py"

const DefaultLogDirPath = "/var/log/stockmonctl/"
