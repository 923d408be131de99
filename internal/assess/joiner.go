package assess

import (
	"errors"
	"fmt"
	"sort"

	"nomassess/internal/inventory"
	"nomassess/internal/nomination"
)

// ErrChoiceNotFound 表示调用方给出的消歧选择在候选行中不存在，属于契约违反。
var ErrChoiceNotFound = errors.New("disambiguation choice not found")

// Join 把每行申请与主数据关联，产出等长、同序的联合记录。
//
// 选择策略：无匹配→主数据字段整体缺席；唯一匹配→直接选中；
// 多匹配→有消歧选择则按 Transport NE 选择（选不中即报错），
// 否则取主数据源顺序的第一行。该默认只是任意约定，不承载业务含义。
func Join(noms nomination.Table, inv inventory.Table, choices map[string]string) ([]CombinedRecord, error) {
	normChoices := make(map[string]string, len(choices))
	for k, v := range choices {
		normChoices[inventory.NormalizeKey(k)] = v
	}

	out := make([]CombinedRecord, 0, len(noms.Records))
	for _, nom := range noms.Records {
		key := inventory.NormalizeKey(nom.Fields[nomination.ColPlaID])
		matches := inv.Lookup(key)

		var selected *inventory.Record
		switch {
		case len(matches) == 0:
		case len(matches) == 1:
			selected = &matches[0]
		default:
			if chosen, ok := normChoices[key]; ok {
				for i := range matches {
					if matches[i].TransportNE() == chosen {
						selected = &matches[i]
						break
					}
				}
				if selected == nil {
					return nil, fmt.Errorf("%w: pla_id=%s transport_ne=%s", ErrChoiceNotFound, key, chosen)
				}
			} else {
				selected = &matches[0]
			}
		}

		fields := make(map[string]any, len(nom.Fields))
		for col, v := range nom.Fields {
			fields[col] = v
		}
		matched := selected != nil
		if matched {
			for col, v := range selected.Fields {
				fields[InvPrefix+col] = v
			}
		}
		out = append(out, CombinedRecord{Fields: fields, PlaID: key, Matched: matched})
	}
	return out, nil
}

// JoinedColumns 返回联合记录的列序：申请列在前，主数据列加前缀跟随。
func JoinedColumns(noms nomination.Table, inv inventory.Table) []string {
	cols := make([]string, 0, len(noms.Columns)+len(inv.Columns))
	cols = append(cols, noms.Columns...)
	for _, c := range inv.Columns {
		if c == "" {
			continue
		}
		cols = append(cols, InvPrefix+c)
	}
	return cols
}

// DetectAmbiguities 预检查询：找出申请表中出现、且在主数据中对应多行的
// 关联键，连同候选 Transport NE 列表返回，供调用方在 Join 前收集消歧输入。
// 只读，无副作用。
func DetectAmbiguities(noms nomination.Table, inv inventory.Table) []Ambiguity {
	seen := make(map[string]bool)
	var out []Ambiguity
	for _, nom := range noms.Records {
		key := inventory.NormalizeKey(nom.Fields[nomination.ColPlaID])
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		matches := inv.Lookup(key)
		if len(matches) <= 1 {
			continue
		}
		candSeen := make(map[string]bool, len(matches))
		candidates := make([]string, 0, len(matches))
		for _, m := range matches {
			ne := m.TransportNE()
			if candSeen[ne] {
				continue
			}
			candSeen[ne] = true
			candidates = append(candidates, ne)
		}
		out = append(out, Ambiguity{PlaID: key, Candidates: candidates})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlaID < out[j].PlaID })
	return out
}
