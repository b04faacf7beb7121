package iracing

import (
	"net/url"
	"reflect"
	"sort"

	"github.com/mitchellh/mapstructure"
)

// decodeRecords maps loosely typed site records onto model structs. The site
// URL-encodes free text in its JSON payloads; unescape undoes that.
func decodeRecords(input interface{}, out interface{}, tag string, unescape bool) error {
	hooks := []mapstructure.DecodeHookFunc{emptyStringToNilHook()}
	if unescape {
		hooks = append(hooks, queryUnescapeHook())
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.ComposeDecodeHookFunc(hooks...),
		WeaklyTypedInput: true,
		TagName:          tag,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(input)
}

// emptyStringToNilHook leaves optional fields nil when the source is blank.
func emptyStringToNilHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.Ptr {
			return data, nil
		}
		if s, ok := data.(string); ok && s == "" {
			return nil, nil
		}
		return data, nil
	}
}

func queryUnescapeHook() mapstructure.DecodeHookFuncType {
	return func(from reflect.Type, to reflect.Type, data interface{}) (interface{}, error) {
		if from.Kind() != reflect.String || to.Kind() != reflect.String {
			return data, nil
		}
		s, ok := data.(string)
		if !ok {
			return data, nil
		}
		if unescaped, err := url.QueryUnescape(s); err == nil {
			return unescaped, nil
		}
		return s, nil
	}
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
