package feature

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gff3Fixture = `##gff-version 3
chr1	HAVANA	gene	1001	5000	.	+	.	ID=gene1;gene_name=TP53;biotype=protein_coding
chr1	HAVANA	mRNA	1001	5000	.	+	.	ID=transcript1;Parent=gene1
chr1	HAVANA	exon	1001	1200	.	+	.	ID=exon1;Parent=transcript1
chr1	HAVANA	exon	4800	5000	.	+	.	ID=exon2;Parent=transcript1
`

func TestBuildGFF3IDDictFlattensGrandchildren(t *testing.T) {
	dict, err := buildGFF3IDDict(strings.NewReader(gff3Fixture), "gene_name")
	require.NoError(t, err)

	gene, ok := dict["gene1"]
	require.True(t, ok)
	assert.Equal(t, "TP53", gene.name)
	assert.True(t, gene.proteinCoding)

	exon, ok := dict["exon2"]
	require.True(t, ok, "grandchild exon must inherit gene1's entry transitively")
	assert.Equal(t, "TP53", exon.name)
}

func TestParseGFF3CollectsOnlyConfiguredFeatureType(t *testing.T) {
	dict, err := buildGFF3IDDict(strings.NewReader(gff3Fixture), "gene_name")
	require.NoError(t, err)

	overlapping, genes, err := ParseGFF3(strings.NewReader(gff3Fixture), dict, resolveChr1(), "gene_name", "gene")
	require.NoError(t, err)
	require.Len(t, genes.names, 1)
	assert.Equal(t, "TP53", genes.names[0])

	intervals := overlapping[0]
	require.Len(t, intervals, 1)
	assert.Equal(t, int32(1000), intervals[0].Start)
	assert.Equal(t, int32(5000), intervals[0].End)
}

func TestParseGFF3Attrs(t *testing.T) {
	attrs := parseGFF3Attrs("ID=gene1;Parent=chr1;biotype=protein_coding")
	assert.Equal(t, "gene1", attrs["ID"])
	assert.Equal(t, "chr1", attrs["Parent"])
	assert.Equal(t, "protein_coding", attrs["biotype"])
}
