package record

// Migration is a typed view over a record's "_migration" object, the
// denormalized metadata the legacy export attaches to every record.
type Migration struct {
	IsMultipart          bool
	HasSerial            bool
	MultipartLegacyRecid string
	// Children holds legacy recids of a serial's child records.
	Children []string
	// Volumes holds the raw volume fragments of a multipart monograph.
	Volumes []Record
	// Serials lists the serials a child record belongs to, by title.
	Serials []SerialEntry
}

// SerialEntry names a serial membership of a record, with the record's
// volume ordinal within that serial.
type SerialEntry struct {
	Title  string
	Volume string
}

// Migration parses the record's "_migration" object. Missing or malformed
// fields come back zero-valued; dump records are not trusted to be complete.
func (r Record) Migration() Migration {
	m := Migration{}
	raw, ok := r["_migration"].(map[string]any)
	if !ok {
		return m
	}
	if v, ok := raw["is_multipart"].(bool); ok {
		m.IsMultipart = v
	}
	if v, ok := raw["has_serial"].(bool); ok {
		m.HasSerial = v
	}
	m.MultipartLegacyRecid = Stringify(raw["multipart_legacy_recid"])
	if children, ok := raw["children"].([]any); ok {
		for _, child := range children {
			m.Children = append(m.Children, Stringify(child))
		}
	}
	if volumes, ok := raw["volumes"].([]any); ok {
		for _, volume := range volumes {
			if fragment, ok := volume.(map[string]any); ok {
				m.Volumes = append(m.Volumes, Record(fragment))
			}
		}
	}
	if serials, ok := raw["serials"].([]any); ok {
		for _, serial := range serials {
			entry, ok := serial.(map[string]any)
			if !ok {
				continue
			}
			m.Serials = append(m.Serials, SerialEntry{
				Title:  Stringify(entry["title"]),
				Volume: Stringify(entry["volume"]),
			})
		}
	}
	return m
}

// SetMigrationField writes a single key into the record's "_migration"
// object, creating it when absent.
func (r Record) SetMigrationField(key string, value any) {
	raw, ok := r["_migration"].(map[string]any)
	if !ok {
		raw = map[string]any{}
		r["_migration"] = raw
	}
	raw[key] = value
}
