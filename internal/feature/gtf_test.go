package feature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolveChr1() func(string) (int32, bool) {
	return func(name string) (int32, bool) {
		if name == "chr1" {
			return 0, true
		}
		return 0, false
	}
}

const gtfFixture = `##description: test
chr1	HAVANA	gene	1001	2000	.	+	.	gene_id "ENSG1"; gene_name "TP53"; gene_biotype "protein_coding";
chr1	HAVANA	exon	1001	1200	.	+	.	gene_id "ENSG1"; gene_name "TP53";
chrUn	HAVANA	gene	1	100	.	+	.	gene_id "ENSGX"; gene_name "ORPHAN";
`

func TestParseGTFExtractsGeneFeaturesOnly(t *testing.T) {
	overlapping, genes, err := ParseGTF(strings.NewReader(gtfFixture), resolveChr1(), "gene_name", "gene")
	require.NoError(t, err)
	require.Len(t, genes.names, 1)
	assert.Equal(t, "TP53", genes.names[0])
	assert.True(t, genes.proteinCoding[0])

	intervals := overlapping[0]
	require.Len(t, intervals, 1)
	assert.Equal(t, int32(1000), intervals[0].Start) // 1-based -> 0-based
	assert.Equal(t, int32(2000), intervals[0].End)
}

func TestParseGTFSkipsUnresolvedChromosome(t *testing.T) {
	overlapping, _, err := ParseGTF(strings.NewReader(gtfFixture), resolveChr1(), "gene_name", "gene")
	require.NoError(t, err)
	_, ok := overlapping[1]
	assert.False(t, ok)
}

func TestParseGTFAttributes(t *testing.T) {
	attrs := parseGTFAttributes(`gene_id "ENSG1"; gene_name "TP53"; tag "Ensembl_canonical";`)
	assert.Equal(t, "ENSG1", attrs["gene_id"])
	assert.Equal(t, "TP53", attrs["gene_name"])
	assert.Equal(t, "Ensembl_canonical", attrs["tag"])
}
