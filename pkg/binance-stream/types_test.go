package binancestream

import (
	"encoding/json"
	"testing"
)

func TestTickerEvent_JSON_Unmarshalling(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		json    string
		want    TickerEvent
		wantErr bool
	}{
		{
			name: "valid ticker event",
			json: `{
				"e": "24hrTicker",
				"E": 1672515782136,
				"s": "BNBBTC",
				"p": "0.0015",
				"P": "250.00",
				"w": "0.0018",
				"c": "0.0025",
				"o": "0.0010",
				"h": "0.0025",
				"l": "0.0010",
				"v": "10000",
				"q": "18"
			}`,
			want: TickerEvent{
				EventType:          TickerEventType,
				EventTime:          1672515782136,
				Symbol:             "BNBBTC",
				PriceChange:        "0.0015",
				PriceChangePercent: "250.00",
				WeightedAvgPrice:   "0.0018",
				LastPrice:          "0.0025",
				OpenPrice:          "0.0010",
				HighPrice:          "0.0025",
				LowPrice:           "0.0010",
				Volume:             "10000",
				QuoteVolume:        "18",
			},
		},
		{
			name: "case sensitive keys keep p and P apart",
			json: `{"s":"BTCEUR","p":"-10.00","P":"-0.02"}`,
			want: TickerEvent{
				Symbol:             "BTCEUR",
				PriceChange:        "-10.00",
				PriceChangePercent: "-0.02",
			},
		},
		{
			name:    "invalid JSON",
			json:    `{invalid`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got TickerEvent
			err := json.Unmarshal([]byte(tt.json), &got)

			if (err != nil) != tt.wantErr {
				t.Fatalf("json.Unmarshal() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestTickerStatistics_JSON_Unmarshalling(t *testing.T) {
	t.Parallel()

	var got []TickerStatistics
	err := json.Unmarshal([]byte(`[{
		"symbol": "BTCEUR",
		"priceChange": "700.00",
		"priceChangePercent": "1.421",
		"weightedAvgPrice": "49817.3",
		"lastPrice": "50000.00",
		"openTime": 1672429382136,
		"closeTime": 1672515782136
	}]`), &got)
	if err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}

	if len(got) != 1 {
		t.Fatalf("len = %d, want 1", len(got))
	}
	if got[0].PriceChangePercent != "1.421" || got[0].WeightedAvgPrice != "49817.3" {
		t.Errorf("got %+v", got[0])
	}
	if got[0].CloseTime != 1672515782136 {
		t.Errorf("CloseTime = %d", got[0].CloseTime)
	}
}

func TestParser_Type(t *testing.T) {
	t.Parallel()

	// json.Unmarshal satisfies Parser
	var p Parser = json.Unmarshal

	var v map[string]string
	if err := p([]byte(`{"s":"BTCEUR"}`), &v); err != nil {
		t.Fatalf("Parser error = %v", err)
	}
	if v["s"] != "BTCEUR" {
		t.Errorf("v[s] = %s, want BTCEUR", v["s"])
	}
}
