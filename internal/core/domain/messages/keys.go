package messages

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// DefaultBundle is the logical name of the bundle shipped with the CLI
const DefaultBundle = "messages"

// ErrMissingTranslation marks a declared key with no bundle entry
var ErrMissingTranslation = errors.New("missing translation")

// Key is a stable symbolic identifier of a localized message
type Key string

// String returns the string representation of Key
func (k Key) String() string {
	return string(k)
}

// SQL map wizard and editor messages.
const (
	NewSqlMapConfigWizardPage1 Key = "NewSqlMapConfigWizardPage_1"
	NewSqlMapConfigWizardPage2 Key = "NewSqlMapConfigWizardPage_2"
	NewSqlMapWizardPage1       Key = "NewSqlMapWizardPage_1"
	NewSqlMapWizardPage2       Key = "NewSqlMapWizardPage_2"

	SqlMapErrQueryIDDuplication        Key = "sqlmap_err_QueryId_duplication"
	SqlMapErrParameterMapIDDuplication Key = "sqlmap_err_ParameterMapId_duplication"
	SqlMapErrResultMapIDDuplication    Key = "sqlmap_err_ResultMapId_duplication"
	SqlMapErrAliasNameDuplication      Key = "sqlmap_err_AliasName_duplication"
	SqlMapErrQueryIDInvalid            Key = "sqlmap_err_QueryId_invalid"
	SqlMapErrParameterMapIDInvalid     Key = "sqlmap_err_ParameterMapId_invalid"
	SqlMapErrResultMapIDInvalid        Key = "sqlmap_err_ResultMapId_invalid"
	SqlMapErrAliasNameInvalid          Key = "sqlmap_err_AliasName_invalid"
	SqlMapErrBindingVariables          Key = "sqlmap_err_binding_variables"

	SqlMapConfigErrPropertyNameDuplication Key = "sqlmapconfig_err_PropertyName_duplication"
	SqlMapConfigErrPropertyNameInvalid     Key = "sqlmapconfig_err_PropertyName_invalid"
	SqlMapConfigErrPropertyValueEmpty      Key = "sqlmapconfig_err_PropertyValue_empty"

	SqlMapInfoDoQueryTest Key = "sqlmap_info_doQueryTest"
	QueryResultZeroInfo   Key = "query_result_zero_info"
)

// Validator launcher messages. {0} is the executable path, {1} the OS reason.
const (
	LaunchStarted          Key = "kw3c_launch_started"
	LaunchFailed           Key = "kw3c_launch_failed"
	LaunchNotFound         Key = "kw3c_launch_not_found"
	LaunchPermissionDenied Key = "kw3c_launch_permission_denied"
	PathInvalid            Key = "kw3c_path_invalid"
)

var declared = []Key{
	NewSqlMapConfigWizardPage1,
	NewSqlMapConfigWizardPage2,
	NewSqlMapWizardPage1,
	NewSqlMapWizardPage2,
	SqlMapErrQueryIDDuplication,
	SqlMapErrParameterMapIDDuplication,
	SqlMapErrResultMapIDDuplication,
	SqlMapErrAliasNameDuplication,
	SqlMapErrQueryIDInvalid,
	SqlMapErrParameterMapIDInvalid,
	SqlMapErrResultMapIDInvalid,
	SqlMapErrAliasNameInvalid,
	SqlMapErrBindingVariables,
	SqlMapConfigErrPropertyNameDuplication,
	SqlMapConfigErrPropertyNameInvalid,
	SqlMapConfigErrPropertyValueEmpty,
	SqlMapInfoDoQueryTest,
	QueryResultZeroInfo,
	LaunchStarted,
	LaunchFailed,
	LaunchNotFound,
	LaunchPermissionDenied,
	PathInvalid,
}

// Declared returns every key the application looks up, sorted
func Declared() []Key {
	keys := append([]Key(nil), declared...)
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// IsDeclared reports whether key belongs to the declared set
func IsDeclared(key Key) bool {
	for _, k := range declared {
		if k == key {
			return true
		}
	}
	return false
}

// Sentinel is returned for keys that have no translation. It can never be
// confused with real text because bundle values are rejected if they match it.
func Sentinel(key Key) string {
	return "!" + string(key) + "!"
}

// IsSentinel reports whether text is the missing-translation marker for some key
func IsSentinel(text string) bool {
	return len(text) > 2 && strings.HasPrefix(text, "!") && strings.HasSuffix(text, "!") &&
		!strings.ContainsAny(text[1:len(text)-1], "! \t\n")
}

// Format substitutes positional {0}, {1}, ... placeholders with args. Unknown
// indexes and malformed braces are left as written.
func Format(template string, args ...any) string {
	if len(args) == 0 || !strings.Contains(template, "{") {
		return template
	}

	var b strings.Builder
	b.Grow(len(template))
	for i := 0; i < len(template); i++ {
		c := template[i]
		if c != '{' {
			b.WriteByte(c)
			continue
		}
		end := strings.IndexByte(template[i:], '}')
		if end < 0 {
			b.WriteString(template[i:])
			break
		}
		idx, err := strconv.Atoi(template[i+1 : i+end])
		if err != nil || idx < 0 || idx >= len(args) {
			b.WriteByte(c)
			continue
		}
		b.WriteString(fmt.Sprint(args[idx]))
		i += end
	}
	return b.String()
}
