package cli

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cryptalis/esys/tpm2"
)

func pcrReadCmd() *cobra.Command {
	var (
		algName string
		pcrList string
	)
	cmd := &cobra.Command{
		Use:     "pcrread",
		Short:   "Read PCR values",
		Example: "tpmcli pcrread --alg sha256 --pcrs 0,1,2,3,7",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alg, err := parseHashAlg(algName)
			if err != nil {
				return err
			}
			pcrs, err := parsePCRList(pcrList)
			if err != nil {
				return err
			}
			sel := tpm2.TPMSPCRSelection{
				Hash:      alg,
				PCRSelect: pcrSelectBitmap(pcrs),
			}
			return withTPM(func(t *tpm2.TPM) error {
				prc := tpm2.PCRRead{
					PCRSelectionIn: tpm2.TPMLPCRSelection{
						PCRSelections: []tpm2.TPMSPCRSelection{sel},
					},
				}
				rsp, err := prc.Execute(t)
				if err != nil {
					return err
				}
				for i, digest := range rsp.PCRValues.Digests {
					label := ""
					if i < len(pcrs) {
						label = fmt.Sprintf("PCR %2d", pcrs[i])
					}
					fmt.Printf("%s: %s\n", label, hex.EncodeToString(digest.Buffer))
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&algName, "alg", "sha256", "PCR bank to read (sha1, sha256, sha384, sha512)")
	cmd.Flags().StringVar(&pcrList, "pcrs", "0,1,2,3,4,5,6,7", "comma-separated PCR indices")
	return cmd
}

func parsePCRList(s string) ([]int, error) {
	var pcrs []int
	for _, field := range strings.Split(s, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || n < 0 || n > 23 {
			return nil, fmt.Errorf("invalid PCR index %q", field)
		}
		pcrs = append(pcrs, n)
	}
	return pcrs, nil
}

// pcrSelectBitmap packs PCR indices into the bitmap used by
// TPMS_PCR_SELECTION. The PC Client platform requires at least 3 octets.
func pcrSelectBitmap(pcrs []int) []byte {
	sel := make([]byte, 3)
	for _, pcr := range pcrs {
		sel[pcr/8] |= 1 << (pcr % 8)
	}
	return sel
}
