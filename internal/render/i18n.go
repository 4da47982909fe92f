package render

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Message keys for chart copy.
const (
	keyPageTitle     = "page.title"
	keyRunSubtitle   = "run.subtitle"
	keySpatialTitle  = "spatial.title"
	keySpatialTrue   = "spatial.series.true"
	keySpatialEst    = "spatial.series.estimated"
	keySpatialLabels = "spatial.series.labels"
	keySpatialEmpty  = "spatial.empty"
	keyAxisX         = "axis.x"
	keyAxisY         = "axis.y"
	keyAxisZ         = "axis.z"
	keyErrorsTitle   = "errors.title"
	keyErrorsSeries  = "errors.series"
	keyErrorsAxisX   = "errors.axis.x"
	keyErrorsAxisY   = "errors.axis.y"
	keyErrorsSummary = "errors.summary"
	keyErrorsEmpty   = "errors.empty"
)

var supportedTags = []language.Tag{
	language.English,
	language.SimplifiedChinese,
}

var tagMatcher = language.NewMatcher(supportedTags)

func init() {
	register(language.English, map[string]string{
		keyPageTitle:     "Position report",
		keyRunSubtitle:   "run %s",
		keySpatialTitle:  "True vs estimated target positions",
		keySpatialTrue:   "True position",
		keySpatialEst:    "Estimated position",
		keySpatialLabels: "Target labels",
		keySpatialEmpty:  "no targets",
		keyAxisX:         "X position (m)",
		keyAxisY:         "Y position (m)",
		keyAxisZ:         "Z position (m)",
		keyErrorsTitle:   "Estimation error per target",
		keyErrorsSeries:  "Average error",
		keyErrorsAxisX:   "Target",
		keyErrorsAxisY:   "Average error (m)",
		keyErrorsSummary: "n=%d mean=%.2f median=%.2f p95=%.2f max=%.2f (%s)",
		keyErrorsEmpty:   "no targets",
	})
	register(language.SimplifiedChinese, map[string]string{
		keyPageTitle:     "定位报告",
		keyRunSubtitle:   "运行 %s",
		keySpatialTitle:  "目标真实位置 vs 估计位置",
		keySpatialTrue:   "真实位置",
		keySpatialEst:    "估计位置",
		keySpatialLabels: "目标标签",
		keySpatialEmpty:  "无目标",
		keyAxisX:         "X 位置 (米)",
		keyAxisY:         "Y 位置 (米)",
		keyAxisZ:         "Z 位置 (米)",
		keyErrorsTitle:   "每个目标的估计误差",
		keyErrorsSeries:  "平均误差",
		keyErrorsAxisX:   "目标",
		keyErrorsAxisY:   "平均误差 (米)",
		keyErrorsSummary: "数量=%d 平均=%.2f 中位数=%.2f P95=%.2f 最大=%.2f (%s)",
		keyErrorsEmpty:   "无目标",
	})
}

func register(tag language.Tag, msgs map[string]string) {
	tags := []language.Tag{tag}
	if base, conf := tag.Base(); conf != language.No {
		if baseTag := language.Make(base.String()); baseTag != tag {
			tags = append(tags, baseTag)
		}
	}
	for key, msg := range msgs {
		for _, t := range tags {
			_ = message.SetString(t, key, msg)
		}
	}
}

// ParseLocale resolves a locale string ("en", "zh-CN", "zh_Hans") to the
// closest supported chart language. Unknown or empty input gives English.
func ParseLocale(s string) language.Tag {
	s = strings.TrimSpace(strings.ReplaceAll(s, "_", "-"))
	if s == "" {
		return language.English
	}
	tag, err := language.Parse(s)
	if err != nil {
		return language.English
	}
	_, idx, conf := tagMatcher.Match(tag)
	if conf == language.No {
		return language.English
	}
	return supportedTags[idx]
}

// SupportedLocales lists the chart languages with full catalogs.
func SupportedLocales() []language.Tag {
	out := make([]language.Tag, len(supportedTags))
	copy(out, supportedTags)
	return out
}
