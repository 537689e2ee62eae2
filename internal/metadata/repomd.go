package metadata

import "encoding/xml"

// Locator describes where one package-list document lives and how to
// verify it, as recorded by a repomd.xml data record.
type Locator struct {
	Checksum     string
	OpenChecksum string
	Timestamp    string
	Size         string
	OpenSize     string
	Location     string
}

// repomdDoc mirrors /repodata/repomd.xml:
//
//	<repomd xmlns="http://linux.duke.edu/metadata/repo">
//	    <data type="primary">
//	        <checksum type="sha256">dabe2ce…</checksum>
//	        <open-checksum type="sha256">e1e2ff…</open-checksum>
//	        <location href="repodata/dabe2ce…-primary.xml.gz"/>
//	        <timestamp>1485854918</timestamp>
//	        <size>134</size>
//	        <open-size>167</open-size>
//	    </data>
//	</repomd>
type repomdDoc struct {
	XMLName xml.Name     `xml:"repomd"`
	Data    []repomdData `xml:"data"`
}

type repomdData struct {
	Type         string          `xml:"type,attr"`
	Checksum     *repomdChecksum `xml:"checksum"`
	OpenChecksum *repomdChecksum `xml:"open-checksum"`
	Location     *repomdLocation `xml:"location"`
	Timestamp    *string         `xml:"timestamp"`
	Size         *string         `xml:"size"`
	OpenSize     *string         `xml:"open-size"`
}

type repomdChecksum struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type repomdLocation struct {
	Href *string `xml:"href,attr"`
}

// ParseRepomd extracts the filelists and primary locators from a
// repomd.xml document. A slot is nil when the document carries no data
// record of that type; records of unrecognized types are ignored.
func ParseRepomd(data []byte) (filelists *Locator, primary *Locator, err error) {
	var doc repomdDoc
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, nil, malformed("repomd.xml", err)
	}

	for _, d := range doc.Data {
		switch d.Type {
		case "filelists", "primary":
		default:
			continue
		}

		loc, err := d.toLocator()
		if err != nil {
			return nil, nil, err
		}
		if d.Type == "filelists" {
			filelists = loc
		} else {
			primary = loc
		}
	}

	return filelists, primary, nil
}

func (d *repomdData) toLocator() (*Locator, error) {
	doc := "repomd.xml"
	if d.Checksum == nil {
		return nil, missingField(doc, d.Type+" checksum")
	}
	if d.OpenChecksum == nil {
		return nil, missingField(doc, d.Type+" open-checksum")
	}
	if d.Timestamp == nil {
		return nil, missingField(doc, d.Type+" timestamp")
	}
	if d.Size == nil {
		return nil, missingField(doc, d.Type+" size")
	}
	if d.OpenSize == nil {
		return nil, missingField(doc, d.Type+" open-size")
	}
	if d.Location == nil || d.Location.Href == nil {
		return nil, missingField(doc, d.Type+" location href")
	}

	return &Locator{
		Checksum:     d.Checksum.Value,
		OpenChecksum: d.OpenChecksum.Value,
		Timestamp:    *d.Timestamp,
		Size:         *d.Size,
		OpenSize:     *d.OpenSize,
		Location:     *d.Location.Href,
	}, nil
}
