package tomlenv

import (
	"reflect"
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pelletier/go-toml/v2"
)

// decode 将配置树解码到 out（指针）。
//
// 启用弱类型转换，并额外支持：
//   - TOML 本地日期时间 → time.Time
//   - 标量 → string（bool 得到 "true" 而不是 "1"）
//   - "30s" → time.Duration
//   - string → encoding.TextUnmarshaler
func decode(tree map[string]any, out any, args Args) error {
	conf := &mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.DecodeHookFuncType(localTimeHook),
			mapstructure.DecodeHookFuncType(scalarToStringHook),
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		ErrorUnused:      args.Strict,
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          args.TagName,
	}
	decoder, err := mapstructure.NewDecoder(conf)
	if err != nil {
		return err
	}

	return decoder.Decode(tree)
}

var timeType = reflect.TypeFor[time.Time]()

func localTimeHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to != timeType {
		return data, nil
	}

	switch typed := data.(type) {
	case toml.LocalDateTime:
		return typed.AsTime(time.UTC), nil
	case toml.LocalDate:
		return typed.AsTime(time.UTC), nil
	case toml.LocalTime:
		return time.Date(0, time.January, 1, typed.Hour, typed.Minute, typed.Second, typed.Nanosecond, time.UTC), nil
	default:
		return data, nil
	}
}

func scalarToStringHook(_ reflect.Type, to reflect.Type, data any) (any, error) {
	if to.Kind() != reflect.String {
		return data, nil
	}

	switch typed := data.(type) {
	case bool:
		return strconv.FormatBool(typed), nil
	case time.Time:
		return typed.Format(time.RFC3339Nano), nil
	case toml.LocalDateTime, toml.LocalDate, toml.LocalTime:
		if s, ok := FormatScalar(typed); ok {
			return s, nil
		}
	}

	return data, nil
}
