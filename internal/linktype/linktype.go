// Package linktype holds the tcpdump link-type registry. The capture
// engines store and surface the raw numeric value; this package only adds
// the name-lookup helper — unknown values are never rejected, only
// reported as "?".
package linktype

// LinkType is the 16-bit data-link type recorded in a pcap file header or
// pcapng interface description block. Unknown numeric values round-trip
// unchanged; they are not errors.
type LinkType uint16

// The registry below mirrors https://www.tcpdump.org/linktypes.html, the
// same table libnokogiri's link_type_t enumerates.
const (
	BSDLoopback            LinkType = 0x0000
	Ethernet               LinkType = 0x0001
	AX25                   LinkType = 0x0003
	IEEE802_5              LinkType = 0x0006
	ARCNETBSD              LinkType = 0x0007
	SLIP                   LinkType = 0x0008
	PPP                    LinkType = 0x0009
	FDDI                   LinkType = 0x000A
	PPPHDLC                LinkType = 0x0032
	PPPoE                  LinkType = 0x0033
	ATMRFC1483             LinkType = 0x0064
	Raw                    LinkType = 0x0065
	CiscoHDLC              LinkType = 0x0068
	IEEE802_11             LinkType = 0x0069
	LAPFFrameRelay         LinkType = 0x006B
	OpenBSDLoopback        LinkType = 0x006C
	LinuxSLL               LinkType = 0x0071
	AppleLocalTalk         LinkType = 0x0072
	OpenBSDPFLog           LinkType = 0x0075
	IEEE802_11Prism        LinkType = 0x0077
	IPOverFC               LinkType = 0x007A
	SunATM                 LinkType = 0x007B
	IEEE802_11Radiotap     LinkType = 0x007F
	ARCNETLinux            LinkType = 0x0081
	AppleIPOverIEEE1394    LinkType = 0x008A
	MTP2WithPHeader        LinkType = 0x008B
	MTP2                   LinkType = 0x008C
	MTP3                   LinkType = 0x008D
	SCCP                   LinkType = 0x008E
	DOCSIS                 LinkType = 0x008F
	LinuxIrDA              LinkType = 0x0090
	User0                  LinkType = 0x0093
	User1                  LinkType = 0x0094
	User2                  LinkType = 0x0095
	User3                  LinkType = 0x0096
	User4                  LinkType = 0x0097
	User5                  LinkType = 0x0098
	User6                  LinkType = 0x0099
	User7                  LinkType = 0x009A
	User8                  LinkType = 0x009B
	User9                  LinkType = 0x009C
	User10                 LinkType = 0x009D
	User11                 LinkType = 0x009E
	User12                 LinkType = 0x009F
	User13                 LinkType = 0x00A0
	User14                 LinkType = 0x00A1
	User15                 LinkType = 0x00A2
	IEEE802_11AVS          LinkType = 0x00A3
	BACNetMSTP             LinkType = 0x00A5
	PPPPPPD                LinkType = 0x00A6
	GPRSLLC                LinkType = 0x00A9
	GPFT                   LinkType = 0x00AA
	GPFF                   LinkType = 0x00AB
	LinuxLAPD              LinkType = 0x00B1
	MFR                    LinkType = 0x00B6
	BluetoothHCIH4         LinkType = 0x00BB
	USBLinux               LinkType = 0x00BD
	PPI                    LinkType = 0x00C0
	IEEE802_15_4WithFCS    LinkType = 0x00C3
	SITA                   LinkType = 0x00C4
	ERF                    LinkType = 0x00C5
	BluetoothHCIH4WithPhdr LinkType = 0x00C9
	AX25KISS               LinkType = 0x00CA
	LAPD                   LinkType = 0x00CB
	PPPWithDir             LinkType = 0x00CC
	CiscoHDLCWithDir       LinkType = 0x00CD
	FrameRelayWithDir      LinkType = 0x00CE
	LAPBWithDir            LinkType = 0x00CF
	IPMBLinux              LinkType = 0x00D1
	IEEE802_15_4NonaskPhy  LinkType = 0x00D7
	USBLinuxMmapped        LinkType = 0x00DC
	FC2                    LinkType = 0x00E0
	FC2WithFrameDelims     LinkType = 0x00E1
	IPNET                  LinkType = 0x00E2
	CANSocketCAN           LinkType = 0x00E3
	IPv4                   LinkType = 0x00E4
	IPv6                   LinkType = 0x00E5
	IEEE802_15_4NoFCS      LinkType = 0x00E6
	DBus                   LinkType = 0x00E7
	DVBCI                  LinkType = 0x00EB
	Mux27010               LinkType = 0x00EC
	Stanag5066DPDU         LinkType = 0x00ED
	NFLog                  LinkType = 0x00EF
	NetAnalyzer            LinkType = 0x00F0
	NetAnalyzerTransparent LinkType = 0x00F1
	IPoIB                  LinkType = 0x00F2
	MPEG2Transport         LinkType = 0x00F3
	NG40                   LinkType = 0x00F4
	NFCLLCP                LinkType = 0x00F5
	InfiniBand             LinkType = 0x00F7
	SCTP                   LinkType = 0x00F8
	USBPcap                LinkType = 0x00F9
	RTACSerial             LinkType = 0x00FA
	BluetoothLELL          LinkType = 0x00FB
	Netlink                LinkType = 0x00FD
	BluetoothLinuxMonitor  LinkType = 0x00FE
	BluetoothBREDRBB       LinkType = 0x00FF
	BluetoothLELLWithPHDR  LinkType = 0x0100
	PROFIBUSDatalink       LinkType = 0x0101
	PKTAP                  LinkType = 0x0102
	EoPON                  LinkType = 0x0103
	IPMIHPM2               LinkType = 0x0104
	ZWaveR1R2              LinkType = 0x0105
	ZWaveR3                LinkType = 0x0106
	WattStopperDLM         LinkType = 0x0107
	ISO14443               LinkType = 0x0108
	RDS                    LinkType = 0x0109
	USBDarwin              LinkType = 0x010A
	SDLC                   LinkType = 0x010C
	LoRaTap                LinkType = 0x010E
	VSOCK                  LinkType = 0x010F
	NordicBLE              LinkType = 0x0110
	DOCSIS31XRA31          LinkType = 0x0111
	EthernetMpacket        LinkType = 0x0112
	DisplayportAux         LinkType = 0x0113
	LinuxSLL2              LinkType = 0x0114
	Openvizsla             LinkType = 0x0116
	EBHSCR                 LinkType = 0x0117
	VPPDispatch            LinkType = 0x0118
	DSATagBRCM             LinkType = 0x0119
	DSATagBRCMPrepend      LinkType = 0x011A
	IEEE802_15_4Tap        LinkType = 0x011B
	DSATagDSA              LinkType = 0x011C
	DSATagEDSA             LinkType = 0x011D
	ELEE                   LinkType = 0x011E
	ZWaveSerial            LinkType = 0x011F
	USB2                   LinkType = 0x0120
	ATSCALP                LinkType = 0x0121
)

var names = map[LinkType]string{
	BSDLoopback:            "NULL",
	Ethernet:               "EN10MB",
	AX25:                   "AX25",
	IEEE802_5:              "IEEE802",
	ARCNETBSD:              "ARCNET",
	SLIP:                   "SLIP",
	PPP:                    "PPP",
	FDDI:                   "FDDI",
	PPPHDLC:                "PPP_HDLC",
	PPPoE:                  "PPP_ETHER",
	ATMRFC1483:             "ATM_RFC1483",
	Raw:                    "RAW",
	CiscoHDLC:              "C_HDLC",
	IEEE802_11:             "IEEE802_11",
	LAPFFrameRelay:         "FRELAY",
	OpenBSDLoopback:        "LOOP",
	LinuxSLL:               "LINUX_SLL",
	AppleLocalTalk:         "LTALK",
	OpenBSDPFLog:           "PFLOG",
	IEEE802_11Prism:        "IEEE802_11_PRISM",
	IPOverFC:               "IP_OVER_FC",
	SunATM:                 "SUNATM",
	IEEE802_11Radiotap:     "IEEE802_11_RADIOTAP",
	ARCNETLinux:            "ARCNET_LINUX",
	AppleIPOverIEEE1394:    "APPLE_IP_OVER_IEEE1394",
	MTP2WithPHeader:        "MTP2_WITH_PHDR",
	MTP2:                   "MTP2",
	MTP3:                   "MTP3",
	SCCP:                   "SCCP",
	DOCSIS:                 "DOCSIS",
	LinuxIrDA:              "LINUX_IRDA",
	IEEE802_11AVS:          "IEEE802_11_AVS",
	BACNetMSTP:             "BACNET_MS_TP",
	PPPPPPD:                "PPP_PPPD",
	GPRSLLC:                "GPRS_LLC",
	GPFT:                   "GPF_T",
	GPFF:                   "GPF_F",
	LinuxLAPD:              "LINUX_LAPD",
	MFR:                    "MFR",
	BluetoothHCIH4:         "BLUETOOTH_HCI_H4",
	USBLinux:               "USB_LINUX",
	PPI:                    "PPI",
	IEEE802_15_4WithFCS:    "IEEE802_15_4_WITHFCS",
	SITA:                   "SITA",
	ERF:                    "ERF",
	BluetoothHCIH4WithPhdr: "BLUETOOTH_HCI_H4_WITH_PHDR",
	AX25KISS:               "AX25_KISS",
	LAPD:                   "LINUX_LAPD_RAW",
	PPPWithDir:             "PPP_WITH_DIR",
	CiscoHDLCWithDir:       "C_HDLC_WITH_DIR",
	FrameRelayWithDir:      "FRELAY_WITH_DIR",
	LAPBWithDir:            "LAPB_WITH_DIR",
	IPMBLinux:              "IPMB_LINUX",
	IEEE802_15_4NonaskPhy:  "IEEE802_15_4_NONASK_PHY",
	USBLinuxMmapped:        "USB_LINUX_MMAPPED",
	FC2:                    "FC2",
	FC2WithFrameDelims:     "FC2_WITH_FRAME_DELIMS",
	IPNET:                  "IPNET",
	CANSocketCAN:           "CAN_SOCKETCAN",
	IPv4:                   "IPV4",
	IPv6:                   "IPV6",
	IEEE802_15_4NoFCS:      "IEEE802_15_4_NOFCS",
	DBus:                   "DBUS",
	DVBCI:                  "DVB_CI",
	Mux27010:               "MUX27010",
	Stanag5066DPDU:         "STANAG_5066_D_PDU",
	NFLog:                  "NFLOG",
	NetAnalyzer:            "NETANALYZER",
	NetAnalyzerTransparent: "NETANALYZER_TRANSPARENT",
	IPoIB:                  "IPOIB",
	MPEG2Transport:         "MPEG_2_TS",
	NG40:                   "NG40",
	NFCLLCP:                "NFC_LLCP",
	InfiniBand:             "INFINIBAND",
	SCTP:                   "SCTP",
	USBPcap:                "USBPCAP",
	RTACSerial:             "RTAC_SERIAL",
	BluetoothLELL:          "BLUETOOTH_LE_LL",
	Netlink:                "NETLINK",
	BluetoothLinuxMonitor:  "BLUETOOTH_LINUX_MONITOR",
	BluetoothBREDRBB:       "BLUETOOTH_BREDR_BB",
	BluetoothLELLWithPHDR:  "BLUETOOTH_LE_LL_WITH_PHDR",
	PROFIBUSDatalink:       "PROFIBUS_DL",
	PKTAP:                  "PKTAP",
	EoPON:                  "EPON",
	IPMIHPM2:               "IPMI_HPM_2",
	ZWaveR1R2:              "ZWAVE_R1_R2",
	ZWaveR3:                "ZWAVE_R3",
	WattStopperDLM:         "WATTSTOPPER_DLM",
	ISO14443:               "ISO_14443",
	RDS:                    "RDS",
	USBDarwin:              "USB_DARWIN",
	SDLC:                   "SDLC",
	LoRaTap:                "LORATAP",
	VSOCK:                  "VSOCK",
	NordicBLE:              "NORDIC_BLE",
	DOCSIS31XRA31:          "DOCSIS31_XRA31",
	EthernetMpacket:        "ETHERNET_MPACKET",
	DisplayportAux:         "DISPLAYPORT_AUX",
	LinuxSLL2:              "LINUX_SLL2",
	Openvizsla:             "OPENVIZSLA",
	EBHSCR:                 "EBHSCR",
	VPPDispatch:            "VPP_DISPATCH",
	DSATagBRCM:             "DSA_TAG_BRCM",
	DSATagBRCMPrepend:      "DSA_TAG_BRCM_PREPEND",
	IEEE802_15_4Tap:        "IEEE802_15_4_TAP",
	DSATagDSA:              "DSA_TAG_DSA",
	DSATagEDSA:             "DSA_TAG_EDSA",
	ELEE:                   "ELEE",
	ZWaveSerial:            "ZWAVE_SERIAL",
	USB2:                   "USB_2_0",
	ATSCALP:                "ATSC_ALP",
}

// Name returns the canonical short name for a link type, or "?" for a
// numeric value not present in the registry. Unregistered values are never
// treated as errors — the engine stores and returns them verbatim.
func (l LinkType) Name() string {
	if n, ok := names[l]; ok {
		return n
	}
	if l >= User0 && l <= User15 {
		return "USER"
	}
	return "?"
}
