package rules

import (
	"strings"
)

// NativeFunctions resolves a function name to its canonical spelling.
type NativeFunctions interface {
	// Canonical returns the declared spelling of name, matched
	// case-insensitively, and whether name is a native function.
	Canonical(name string) (string, bool)
}

// FunctionTable is a NativeFunctions backed by a map from lowercase name to
// canonical spelling.
type FunctionTable map[string]string

// NewFunctionTable builds a table from canonical names.
func NewFunctionTable(names ...string) FunctionTable {
	table := make(FunctionTable, len(names))
	for _, name := range names {
		table[strings.ToLower(name)] = name
	}
	return table
}

// Canonical implements NativeFunctions.
func (t FunctionTable) Canonical(name string) (string, bool) {
	canonical, ok := t[strings.ToLower(name)]
	return canonical, ok
}

// DefaultNativeFunctions returns the built-in table of core PHP functions.
func DefaultNativeFunctions() FunctionTable {
	return NewFunctionTable(coreFunctions...)
}

// coreFunctions lists functions from the standard, string, array, math,
// json, pcre, mbstring and date extensions.
//
//nolint:gochecknoglobals // Read-only name list.
var coreFunctions = []string{
	// strings
	"addslashes", "bin2hex", "chop", "chr", "chunk_split", "crc32", "explode",
	"html_entity_decode", "htmlentities", "htmlspecialchars", "htmlspecialchars_decode",
	"implode", "join", "lcfirst", "levenshtein", "ltrim", "md5", "nl2br", "number_format",
	"ord", "parse_str", "printf", "rtrim", "sha1", "similar_text", "sprintf", "sscanf",
	"str_contains", "str_ends_with", "str_getcsv", "str_ireplace", "str_pad", "str_repeat",
	"str_replace", "str_split", "str_starts_with", "str_word_count", "strcasecmp", "strchr",
	"strcmp", "strip_tags", "stripos", "stripslashes", "stristr", "strlen", "strnatcasecmp",
	"strnatcmp", "strncasecmp", "strncmp", "strpbrk", "strpos", "strrchr", "strrev",
	"strripos", "strrpos", "strstr", "strtolower", "strtoupper", "strtr", "substr",
	"substr_count", "substr_replace", "trim", "ucfirst", "ucwords", "vsprintf", "wordwrap",

	// arrays
	"array_chunk", "array_column", "array_combine", "array_count_values", "array_diff",
	"array_diff_key", "array_fill", "array_fill_keys", "array_filter", "array_flip",
	"array_intersect", "array_intersect_key", "array_is_list", "array_key_exists",
	"array_key_first", "array_key_last", "array_keys", "array_map", "array_merge",
	"array_merge_recursive", "array_pad", "array_pop", "array_product", "array_push",
	"array_rand", "array_reduce", "array_replace", "array_reverse", "array_search",
	"array_shift", "array_slice", "array_splice", "array_sum", "array_unique",
	"array_unshift", "array_values", "array_walk", "arsort", "asort", "compact", "count",
	"current", "end", "extract", "in_array", "key", "key_exists", "krsort", "ksort", "natsort",
	"next", "pos", "prev", "range", "reset", "rsort", "shuffle", "sizeof", "sort", "uasort",
	"uksort", "usort",

	// math
	"abs", "ceil", "floor", "fmod", "intdiv", "is_finite", "is_infinite", "is_nan", "max",
	"min", "mt_rand", "pi", "pow", "random_int", "rand", "round", "sqrt",

	// types and variables
	"boolval", "floatval", "doubleval", "get_debug_type", "gettype", "intval", "is_array",
	"is_bool", "is_callable", "is_countable", "is_float", "is_int", "is_integer",
	"is_iterable", "is_long", "is_null", "is_numeric", "is_object", "is_real", "is_resource",
	"is_scalar", "is_string", "serialize", "settype", "strval", "unserialize", "var_dump",
	"var_export",

	// functions and classes
	"call_user_func", "call_user_func_array", "class_exists", "func_get_args",
	"func_num_args", "function_exists", "get_class", "get_object_vars", "get_parent_class",
	"interface_exists", "is_a", "is_subclass_of", "method_exists", "property_exists",
	"spl_autoload_register", "spl_object_hash", "spl_object_id",

	// files and output
	"basename", "dirname", "fclose", "feof", "fgets", "file", "file_exists",
	"file_get_contents", "file_put_contents", "fopen", "fputs", "fread", "fwrite",
	"is_dir", "is_file", "is_readable", "is_writable", "is_writeable", "mkdir", "ob_get_clean",
	"ob_start", "pathinfo", "print_r", "readfile", "realpath", "rename", "rmdir", "touch",
	"unlink",

	// json, pcre, mbstring, date
	"json_decode", "json_encode", "json_last_error", "json_last_error_msg",
	"preg_match", "preg_match_all", "preg_quote", "preg_replace", "preg_replace_callback",
	"preg_split", "mb_strlen", "mb_strtolower", "mb_strtoupper", "mb_substr",
	"checkdate", "date", "gmdate", "microtime", "mktime", "strtotime", "time",

	// misc
	"constant", "define", "defined", "error_log", "error_reporting", "getenv", "ini_get",
	"ini_set", "php_sapi_name", "phpversion", "set_error_handler", "set_exception_handler",
	"sleep", "trigger_error", "uniqid", "usleep", "version_compare",
}
