package packagemanager

const GitPackage = "git"
const Python3Package = "python3"
const Python3PipPackage = "python3-pip"
const NanoPackage = "nano"
const VimPackage = "vim"

const DistributionDebian = "debian"
const DistributionUbuntu = "ubuntu"
const DistributionRaspbian = "raspbian"
const DistributionCentOS = "centos"
const DistributionAlmaLinux = "almalinux"
const DistributionRockyLinux = "rocky"
const DistributionFedora = "fedora"
const DistributionAmazon = "amzn"
