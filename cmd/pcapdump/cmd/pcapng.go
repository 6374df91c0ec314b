package cmd

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/lethalbit/libnokogiri/pcapng"
)

var pcapngWriteOut string

var pcapngCmd = &cobra.Command{
	Use:   "pcapng <file>",
	Short: "Dump or copy a pcapng capture",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if pcapngWriteOut != "" {
			return copyPcapng(args[0], pcapngWriteOut)
		}
		return dumpPcapng(args[0])
	},
}

func init() {
	pcapngCmd.Flags().StringVarP(&pcapngWriteOut, "write", "w", "", "copy the input capture to this output path instead of dumping it")
}

func dumpPcapng(path string) error {
	eng, err := pcapng.Open(path, pcapng.ReadOnly(), pcapng.WithLogger(log))
	if err != nil {
		return err
	}
	defer eng.Close()

	for si, section := range eng.Sections() {
		order := "big-endian"
		if !section.ByteOrderSwap {
			order = "little-endian"
		}
		fmt.Printf("# section %d: version=%d.%d order=%s blocks=%d\n",
			si, section.Header.Version.Major, section.Header.Version.Minor, order, len(section.Blocks))
		if comment, ok := pcapng.Comment(section.Header.Options); ok {
			fmt.Printf("#  comment=%s\n", comment)
		}

		it := eng.Iterator(section)
		for it.Next() {
			if it.Index() == 0 {
				continue // the section header block itself, already summarized above
			}
			block, err := it.Block()
			if err != nil {
				return err
			}
			describeBlock(it.Index(), block)
		}
	}
	return nil
}

// copyPcapng reads every section and block out of in and writes them into a
// freshly created capture at out, preserving section headers in order.
func copyPcapng(in, out string) error {
	src, err := pcapng.Open(in, pcapng.ReadOnly(), pcapng.WithLogger(log))
	if err != nil {
		return err
	}
	defer src.Close()

	sections := src.Sections()
	if len(sections) == 0 {
		return errors.New("pcapng: input capture has no sections")
	}

	dst, err := pcapng.Create(out, sections[0].Header, pcapng.WithLogger(log))
	if err != nil {
		return err
	}
	defer dst.Close()

	blockCount := 0
	for si, section := range sections {
		if si > 0 {
			if err := dst.AppendSection(section.Header); err != nil {
				return err
			}
		}

		it := src.Iterator(section)
		for it.Next() {
			if it.Index() == 0 {
				continue // the section header block, already carried via AppendSection/Create
			}
			block, err := it.Block()
			if err != nil {
				return err
			}
			if err := dst.AppendBlock(block); err != nil {
				return err
			}
			blockCount++
		}
	}

	if err := dst.Save(); err != nil {
		return err
	}

	fmt.Printf("# wrote %d section(s), %d block(s) to %s\n", len(sections), blockCount, out)
	return nil
}

func describeBlock(index int, block pcapng.Block) {
	switch b := block.(type) {
	case *pcapng.InterfaceDescriptionBlock:
		fmt.Printf("%d: idb link_type=%s snaplen=%d\n", index, b.LinkType.Name(), b.SnapLen)
		if name, ok := pcapng.String(b.Options, pcapng.IfName); ok {
			fmt.Printf("  if_name=%s\n", name)
		}
	case *pcapng.EnhancedPacketBlock:
		fmt.Printf("%d: epb interface=%d captured=%d original=%d\n", index, b.InterfaceID, b.CapturedLen, b.OriginalLen)
	case *pcapng.PacketBlock:
		fmt.Printf("%d: pkt interface=%d captured=%d original=%d\n", index, b.InterfaceID, b.CapturedLen, b.OriginalLen)
	case *pcapng.SimplePacketBlock:
		fmt.Printf("%d: spb original=%d\n", index, b.OriginalLen)
	case *pcapng.InterfaceStatisticsBlock:
		fmt.Printf("%d: isb interface=%d\n", index, b.InterfaceID)
	case *pcapng.NameResolutionBlock:
		fmt.Printf("%d: nrb records=%d\n", index, len(b.Records))
	case *pcapng.DecryptionSecretsBlock:
		fmt.Printf("%d: dsb secrets_type=0x%08x length=%d\n", index, b.SecretsType, len(b.Secrets))
	case *pcapng.CustomBlock:
		fmt.Printf("%d: custom pen=%d length=%d\n", index, b.PEN, len(b.Payload))
	case *pcapng.Opaque:
		fmt.Printf("%d: opaque type=0x%08x length=%d\n", index, uint32(b.BlockType()), len(b.Body))
	default:
		fmt.Printf("%d: %s length=%d\n", index, block.BlockType().Name(), block.TotalLength())
	}
}
