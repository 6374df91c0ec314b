package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lethalbit/libnokogiri/pcap"
)

var pcapWriteOut string

var pcapCmd = &cobra.Command{
	Use:   "pcap <file>",
	Short: "Dump or copy a legacy pcap capture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if pcapWriteOut != "" {
			return copyPcap(args[0], pcapWriteOut)
		}
		return dumpPcap(args[0])
	},
}

func init() {
	pcapCmd.Flags().StringVarP(&pcapWriteOut, "write", "w", "", "copy the input capture to this output path instead of dumping it")
}

func dumpPcap(path string) error {
	eng, err := pcap.Open(path, pcap.ReadOnly(), pcap.WithLogger(log))
	if err != nil {
		return err
	}
	defer eng.Close()

	header := eng.Header()
	fmt.Printf("# variant=%s version=%d.%d link_type=%s snaplen=%d packets=%d\n",
		header.Variant.Name(), header.Version.Major, header.Version.Minor,
		header.LinkType.Name(), header.SnapLen, eng.PacketCount())

	it := eng.Iterator()
	for it.Next() {
		pkt, err := it.Packet()
		if err != nil {
			return err
		}
		complete := "complete"
		if !pkt.Complete {
			complete = "truncated"
		}
		fmt.Printf("packet %d: ts=%.6f captured=%d original=%d %s\n",
			it.Index(), eng.TimestampSeconds(pkt), pkt.Header.CapturedLen, pkt.Header.ActualLen, complete)
		if pkt.Modified != nil {
			fmt.Printf("  interface=%d protocol=0x%04x type=%d\n",
				pkt.Modified.InterfaceIndex, pkt.Modified.Protocol, pkt.Modified.PacketType)
		}
	}
	return nil
}

// copyPcap reads every packet out of in and writes them into a freshly
// created capture at out, preserving the file header.
func copyPcap(in, out string) error {
	src, err := pcap.Open(in, pcap.ReadOnly(), pcap.WithLogger(log))
	if err != nil {
		return err
	}
	defer src.Close()

	dst, err := pcap.Create(out, src.Header(), pcap.WithLogger(log))
	if err != nil {
		return err
	}
	defer dst.Close()

	it := src.Iterator()
	for it.Next() {
		pkt, err := it.Packet()
		if err != nil {
			return err
		}
		if err := dst.AppendPacket(pkt); err != nil {
			return err
		}
	}

	if err := dst.Save(); err != nil {
		return err
	}

	fmt.Printf("# wrote %d packet(s) to %s\n", dst.PacketCount(), out)
	return nil
}
